package config

import (
	"flag"
	"fmt"
	"os"
	"sort"
)

const (
	EnvAddr      = "CHESS_ADDR"
	EnvWebDir    = "CHESS_WEB_DIR"
	EnvDepth     = "CHESS_DEPTH"
	EnvLogLevel  = "CHESS_LOG_LEVEL"
	EnvUCIEngine = "UCI_ENGINE_PATH"
)

// ApplyEnv fills flags from environment variables after fs.Parse. bindings
// maps flag name to variable name. A flag given on the command line always
// wins; an empty variable is ignored. A value the flag rejects is an error.
func ApplyEnv(fs *flag.FlagSet, bindings map[string]string) error {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// 按 flag 名排序，出错时信息稳定
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if explicit[name] {
			continue
		}
		env := bindings[name]
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("%s=%q: %w", env, v, err)
		}
	}
	return nil
}
