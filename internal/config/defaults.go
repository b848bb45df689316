package config

const (
	defaultOutputDir   = "output-web"
	defaultLogDir      = "~/.local/share/assetpress/logs"
	defaultFormat      = "webp"
	defaultTargetWidth = 1920
	defaultPDFZoom     = 2.0
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// defaultExtensions is the source selection used when the config names none.
var defaultExtensions = []string{".tif", ".tiff", ".jpg", ".jpeg", ".png", ".pdf"}

// Default returns a Config populated with repository defaults. The quality
// default depends on the format and is resolved during normalization so a
// config that switches format without setting quality still gets the right
// value.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Convert: Convert{
			Format:      defaultFormat,
			Quality:     -1,
			TargetWidth: defaultTargetWidth,
			PDFZoom:     defaultPDFZoom,
			Extensions:  append([]string(nil), defaultExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
