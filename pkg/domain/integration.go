package domain

type NodePropertyType string

const (
	NodePropertyType_String  NodePropertyType = "string"
	NodePropertyType_Text    NodePropertyType = "text"
	NodePropertyType_Boolean NodePropertyType = "boolean"
)

// NodeProperty describes one credential field for display and form
// rendering. Secret fields are masked in the UI and excluded from plain
// text rendering.
type NodeProperty struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
	Type        NodePropertyType `json:"type"`
	IsSecret    bool             `json:"is_secret,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`

	Options   []NodePropertyOption `json:"options,omitempty"`
	DependsOn *DependsOn           `json:"depends_on,omitempty"`
}

type NodePropertyOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DependsOn gates the visibility of a property on the value of another one.
type DependsOn struct {
	PropertyKey string `json:"property_key"`
	Value       string `json:"value"`
}

// Integration is the display metadata of a credential block type.
type Integration struct {
	ID                   CredentialType `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	LogoURL              string         `json:"logo_url,omitempty"`
	CanTestConnection    bool           `json:"can_test_connection"`
	CredentialProperties []NodeProperty `json:"credential_properties"`
}
