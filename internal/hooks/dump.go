package hooks

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// dirKey carries the shell's working directory through the dump. Its
// presence also proves the hook ran to completion.
const dirKey = "VEW_HOOK_DIR"

// encodedKey lists the variables whose values are base64 encoded because
// godotenv cannot carry them verbatim. Encoded values carry encodedPrefix,
// which keeps godotenv from reading them as integers.
const (
	encodedKey    = "VEW_HOOK_ENCODED"
	encodedPrefix = "b64:"
)

// ErrNoDump is returned when a hook exits before the environment is dumped.
var ErrNoDump = errors.New("hook exited before reporting its environment")

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether key can travel through a dump.
func ValidName(key string) bool {
	return identRegex.MatchString(key)
}

// WriteDump writes environ and dir in dotenv form.
func WriteDump(w io.Writer, environ []string, dir string) error {
	env := make(map[string]string, len(environ)+2)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !ValidName(k) || k == dirKey || k == encodedKey {
			continue
		}
		env[k] = v
	}
	env[dirKey] = dir

	var encoded []string
	for k, v := range env {
		if !roundTrips(k, v) {
			env[k] = encodedPrefix + base64.StdEncoding.EncodeToString([]byte(v))
			encoded = append(encoded, k)
		}
	}
	if len(encoded) > 0 {
		sort.Strings(encoded)
		env[encodedKey] = strings.Join(encoded, " ")
	}

	out, err := godotenv.Marshal(env)
	if err != nil {
		return fmt.Errorf("hooks.WriteDump: %w", err)
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// roundTrips reports whether godotenv reads back exactly what it wrote.
// Values ending in a backslash and integers with leading zeros do not.
func roundTrips(k, v string) bool {
	line, err := godotenv.Marshal(map[string]string{k: v})
	if err != nil {
		return false
	}
	got, err := godotenv.Unmarshal(line)
	return err == nil && got[k] == v
}

// ParseDump reads a dump written by WriteDump.
func ParseDump(data []byte) (env map[string]string, dir string, err error) {
	env, err = godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("hooks.ParseDump: %w", err)
	}
	if keys, ok := env[encodedKey]; ok {
		delete(env, encodedKey)
		for _, k := range strings.Fields(keys) {
			raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(env[k], encodedPrefix))
			if err != nil {
				return nil, "", fmt.Errorf("hooks.ParseDump: %s: %w", k, err)
			}
			env[k] = string(raw)
		}
	}
	dir, ok := env[dirKey]
	if !ok {
		return nil, "", ErrNoDump
	}
	delete(env, dirKey)
	return env, dir, nil
}
