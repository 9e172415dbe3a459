package model

// EnvConfig holds sensitive environment settings
// @Description Private configuration (never exposed through public endpoints)
type EnvConfig struct {
	Port          string   `json:"port"`
	Environment   string   `json:"environment"`
	MongoUri      string   `json:"mongoUri"`
	SessionSecret string   `json:"sessionSecret"`
	FrontendUrls  []string `json:"frontendUrls"`
	// WorldBankUrl overrides the indicator API base URL. Empty means the
	// public endpoint.
	WorldBankUrl string `json:"worldBankUrl"`
}
