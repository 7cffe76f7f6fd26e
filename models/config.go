package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"SNPIT_DEBUG"`

	Api struct {
		Url                            string `yaml:"url"`
		Port                           string `yaml:"port" envconfig:"SNPIT_API_INTERNAL_PORT" default:"5000"`
		SamplePath                     string `yaml:"samplePath" envconfig:"SNPIT_API_SAMPLE_PATH" default:"/data"`
		ClassificationConcurrencyLevel int    `yaml:"classificationConcurrencyLevel" envconfig:"SNPIT_API_CLASSIFICATION_CONCURRENCY_LEVEL" default:"4"`
		RequestRetentionHours          int    `yaml:"requestRetentionHours" envconfig:"SNPIT_API_REQUEST_RETENTION_HOURS" default:"24"`
	} `yaml:"api"`

	Library struct {
		Directory     string `yaml:"directory" envconfig:"SNPIT_LIBRARY_DIR" default:"lib"`
		CatalogFile   string `yaml:"catalogFile" envconfig:"SNPIT_LIBRARY_CATALOG_FILE" default:"library.csv"`
		ReferenceFile string `yaml:"referenceFile" envconfig:"SNPIT_LIBRARY_REFERENCE_FILE" default:"H37Rv.gbk"`
	} `yaml:"library"`

	Classification struct {
		Threshold    float64 `yaml:"threshold" envconfig:"SNPIT_THRESHOLD" default:"10"`
		IgnoreFilter bool    `yaml:"ignoreFilter" envconfig:"SNPIT_IGNORE_FILTER"`
	} `yaml:"classification"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"SNPIT_ES_URL"`
		Username string `yaml:"username" envconfig:"SNPIT_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"SNPIT_ES_PASSWORD"`
	} `yaml:"elasticsearch"`

	SemVer         string `yaml:"semver" envconfig:"SNPIT_SEMVER" default:"0.1.0"`
	ServiceContact string `yaml:"serviceContact" envconfig:"SNPIT_SERVICE_CONTACT"`
}
