package narrowphase

const defaultCacheCapacity = 4096

// Config tunes the Detector.
type Config struct {
	// Workers bounds DetectAll's parallelism; zero means GOMAXPROCS.
	Workers int         `json:"workers" yaml:"workers"`
	Cache   CacheConfig `json:"cache" yaml:"cache"`
}

type CacheConfig struct {
	Enabled  bool `json:"enabled" yaml:"enabled"`
	Capacity int  `json:"capacity" yaml:"capacity"`
}

func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{Capacity: defaultCacheCapacity},
	}
}
