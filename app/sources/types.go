package sources

// Config describes one direct RSS/Atom source, loaded from a YAML file in
// the feeds directory.
type Config struct {
	Name     string   // Derived from filename (without extension)
	URL      string   `yaml:"url"`
	Settings Settings `yaml:"settings"`
}

type Settings struct {
	Enabled  bool `yaml:"enabled"`
	MaxItems int  `yaml:"max_items"`
	Timeout  int  `yaml:"timeout"` // seconds
}
