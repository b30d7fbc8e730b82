package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	CardConfig struct {
		Width  int        `yaml:"width" validate:"min=600"`
		Height int        `yaml:"height" validate:"min=800"`
		Theme  ThemeStyle `yaml:"theme" validate:"gte=0"`
	}

	FontsConfig struct {
		Dirs      []string `yaml:"dirs" validate:"dive,required"`
		Title     string   `yaml:"title"`
		Body      string   `yaml:"body"`
		TitleSize int      `yaml:"title_size" validate:"min=16"`
		BodySize  int      `yaml:"body_size" validate:"min=12"`
	}

	CoverConfig struct {
		Style            string `yaml:"style" validate:"oneof=classic magazine minimal"`
		DefaultImagePath string `yaml:"default_image_path" sanitize:"assure_file_access"`
		TitleFontSize    int    `yaml:"title_font_size" validate:"min=16"`
	}

	PromoConfig struct {
		Enable       bool     `yaml:"enable"`
		Title        string   `yaml:"title" validate:"required_unless=Enable false"`
		TextTemplate string   `yaml:"text_template"`
		Tags         []string `yaml:"tags" validate:"dive,required"`
	}

	ImagesConfig struct {
		Format             OutputFmt       `yaml:"format" validate:"gte=0"`
		JPEGQuality        int             `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		Resize             ImageResizeMode `yaml:"resize" validate:"gte=0"`
		RemoveTransparency bool            `yaml:"remove_png_transparency"`
		Grayscale          bool            `yaml:"grayscale"`
	}

	DocumentConfig struct {
		FixZip                bool         `yaml:"fix_zip"`
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		DefaultTags           []string     `yaml:"default_tags" validate:"dive,required"`
		Card                  CardConfig   `yaml:"card"`
		Fonts                 FontsConfig  `yaml:"fonts"`
		Cover                 CoverConfig  `yaml:"cover"`
		Promo                 PromoConfig  `yaml:"promo"`
		Images                ImagesConfig `yaml:"images"`
	}

	MetadataConfig struct {
		Enable     bool         `yaml:"enable"`
		Endpoint   string       `yaml:"endpoint" validate:"required_unless=Enable false,omitempty,url"`
		Model      string       `yaml:"model" validate:"required_unless=Enable false"`
		APIKey     SecretString `yaml:"api_key"`
		TimeoutSec int          `yaml:"timeout_sec" validate:"min=0"`
		CachePath  string       `yaml:"cache_path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Metadata  MetadataConfig `yaml:"metadata"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	PromoTextTemplateFieldName  TemplateFieldName = "text_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(PromoTextTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitization failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
