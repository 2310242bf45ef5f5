// Package export renders decrypted tokens as environment variable
// assignments: .env files and POSIX shell export scripts.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/models"
)

// Format selects the output syntax.
type Format string

const (
	FormatDotenv Format = "env"
	FormatShell  Format = "shell"
)

// ParseFormat accepts "env"/"dotenv"/".env" and "shell"/"sh"/"bash".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "env", "dotenv", ".env":
		return FormatDotenv, nil
	case "shell", "sh", "bash":
		return FormatShell, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (use env or shell)", common.ErrValidation, s)
}

// DefaultFileName is the file name suggested for a format.
func (f Format) DefaultFileName() string {
	if f == FormatShell {
		return "export-env.sh"
	}
	return ".env"
}

var (
	invalidKeyChars = regexp.MustCompile(`[^A-Z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// EnvKey derives a variable name from a service and token name: upper-cased,
// every character outside [A-Z0-9_] replaced by an underscore, runs of
// underscores collapsed and leading/trailing underscores removed.
//
//	EnvKey("GitHub", "ci token") == "GITHUB_CI_TOKEN"
func EnvKey(service, name string) string {
	key := strings.ToUpper(strings.TrimSpace(service + "_" + name))
	key = invalidKeyChars.ReplaceAllString(key, "_")
	key = underscoreRuns.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// Render formats tokens in the given format, one assignment per line, in
// input order.
func Render(f Format, tokens []models.PlainToken) (string, error) {
	switch f {
	case FormatDotenv:
		return Dotenv(tokens), nil
	case FormatShell:
		return Shell(tokens), nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", common.ErrValidation, f)
}

// plainValue matches values that need no quoting in a .env file.
var plainValue = regexp.MustCompile(`^[A-Za-z0-9_./:@+,=-]*$`)

// Dotenv renders KEY=value lines. Values with characters that a .env parser
// would interpret are double-quoted and escaped.
func Dotenv(tokens []models.PlainToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(EnvKey(t.ServiceName, t.TokenName))
		b.WriteByte('=')
		if plainValue.MatchString(t.Value) {
			b.WriteString(t.Value)
		} else {
			b.WriteString(dotenvQuote(t.Value))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func dotenvQuote(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(v) + `"`
}

// Shell renders export KEY="value" lines safe to source from sh or bash.
func Shell(tokens []models.PlainToken) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "export %s=\"%s\"\n", EnvKey(t.ServiceName, t.TokenName), r.Replace(t.Value))
	}
	return b.String()
}
