package domain

import "encoding/json"

// SecretPlaceholder replaces secret values anywhere they could leak: log
// output, %v/%s formatting, and JSON serialization.
const SecretPlaceholder = "**********"

// SecretString wraps a sensitive string value. The raw value is only
// reachable through Reveal; every default representation is redacted.
type SecretString struct {
	value string
}

func NewSecretString(value string) SecretString {
	return SecretString{value: value}
}

// Reveal returns the raw value. The result must not be logged.
func (s SecretString) Reveal() string {
	return s.value
}

func (s SecretString) IsEmpty() bool {
	return s.value == ""
}

func (s SecretString) String() string {
	if s.value == "" {
		return ""
	}
	return SecretPlaceholder
}

func (s SecretString) GoString() string {
	return s.String()
}

func (s SecretString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SecretString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.value = raw
	return nil
}

// SecretBytes wraps a sensitive byte payload, typically PEM key material.
type SecretBytes struct {
	value []byte
}

func NewSecretBytes(value []byte) SecretBytes {
	return SecretBytes{value: value}
}

// Reveal returns the raw bytes. The result must not be logged.
func (s SecretBytes) Reveal() []byte {
	return s.value
}

func (s SecretBytes) IsEmpty() bool {
	return len(s.value) == 0
}

func (s SecretBytes) String() string {
	if len(s.value) == 0 {
		return ""
	}
	return SecretPlaceholder
}

func (s SecretBytes) GoString() string {
	return s.String()
}

func (s SecretBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SecretBytes) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.value = []byte(raw)
	return nil
}
