package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	BackendURL            string   `yaml:"backendURL"`
	RequestTimeoutSeconds int      `yaml:"requestTimeoutSeconds"`
	Port                  int      `yaml:"port"`
	AllowedTypes          []string `yaml:"allowedTypes"`
	MaxFileBytes          int64    `yaml:"maxFileBytes"`
	MaxToasts             int      `yaml:"maxToasts"`
	SuccessToastMs        int      `yaml:"successToastMs"`
	ErrorToastMs          int      `yaml:"errorToastMs"`
	NotifyWS              bool     `yaml:"notifyWS"`
	IntakeLinkTTLSeconds  int      `yaml:"intakeLinkTTLSeconds"`
	DomainCacheTTLSeconds int      `yaml:"domainCacheTTLSeconds"`
	PublicBaseURL         string   `yaml:"publicBaseURL,omitempty"`
	DefaultDomain         string   `yaml:"defaultDomain,omitempty"`
}
