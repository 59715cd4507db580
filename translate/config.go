package translate

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/cyana"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
)

// Options tune a translation.
type Options struct {
	Style       emit.Style
	NoReparse   bool
	MaxErrors   int
	ChainPolicy listener.ChainPolicy
	SolidState  bool

	// How CYANA distance lines are read. nil means by file extension.
	CyanaMode *cyana.Mode

	// Reasons known before the first pass.
	Plan *reparse.Plan
}

// Config is the contents of a configuration file. Empty values leave the
// corresponding option alone.
type Config struct {
	OutputStyle string                       `toml:"output_style"`
	NoReparse   bool                         `toml:"no_reparse"`
	MaxErrors   int                          `toml:"max_errors"`
	ChainPolicy string                       `toml:"chain_policy"`
	SolidState  bool                         `toml:"solid_state"`
	CyanaMode   string                       `toml:"cyana_mode"`
	CCDDir      string                       `toml:"ccd_dir"`
	Reasons     map[string]map[string]string `toml:"reasons"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Apply sets the options named in cfg. Unknown reparse keys in the
// [reasons] table are an error.
func (cfg *Config) Apply(opts *Options) error {
	var err error
	if len(cfg.OutputStyle) > 0 {
		if opts.Style, err = emit.ParseStyle(cfg.OutputStyle); err != nil {
			return err
		}
	}
	if len(cfg.ChainPolicy) > 0 {
		if opts.ChainPolicy, err = listener.ParseChainPolicy(cfg.ChainPolicy); err != nil {
			return err
		}
	}
	if len(cfg.CyanaMode) > 0 {
		mode, err := cyana.ParseMode(cfg.CyanaMode)
		if err != nil {
			return err
		}
		opts.CyanaMode = &mode
	}
	if cfg.MaxErrors > 0 {
		opts.MaxErrors = cfg.MaxErrors
	}
	opts.NoReparse = opts.NoReparse || cfg.NoReparse
	opts.SolidState = opts.SolidState || cfg.SolidState
	if len(cfg.Reasons) > 0 {
		if opts.Plan, err = reparse.PlanFrom(cfg.Reasons); err != nil {
			return fmt.Errorf("reasons: %w", err)
		}
	}
	return nil
}
