// Package flagx lets several configuration layers read their own flags from
// os.Args without tripping over flags that belong to another layer.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
//
// Both "-f value" and "-f=value" forms are recognised. A token following an
// allowed flag is taken as its value unless it starts with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// stringFlag parses a single string flag known under several names and
// returns the last value given, or "" when none of the names is present.
func stringFlag(setName string, names ...string) string {
	var value string

	args := FilterArgs(os.Args[1:], dashed(names))

	fs := flag.NewFlagSet(setName, flag.ContinueOnError)
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
	}
	_ = fs.Parse(args)

	return value
}

func dashed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, "-"+n)
	}
	return out
}

// ConfigFileFlag returns the JSON config path given via -c or -config.
func ConfigFileFlag() string {
	return stringFlag("json", "config", "c")
}

// EnvFileFlag returns the dotenv path given via -env.
func EnvFileFlag() string {
	return stringFlag("env", "env")
}
