package export

import (
	"testing"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(service, name, value string) models.PlainToken {
	return models.PlainToken{Token: models.Token{ServiceName: service, TokenName: name}, Value: value}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		service, name, want string
	}{
		{"GitHub", "ci", "GITHUB_CI"},
		{"GitHub", "ci token", "GITHUB_CI_TOKEN"},
		{"  my-service ", "prod.key", "MY_SERVICE_PROD_KEY"},
		{"__AWS__", "__secret__", "AWS_SECRET"},
		{"Stripe!!", "live  key", "STRIPE_LIVE_KEY"},
		{"Ünïcode", "ключ", "N_CODE"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnvKey(tt.service, tt.name), "%q/%q", tt.service, tt.name)
	}
}

func TestDotenv(t *testing.T) {
	out := Dotenv([]models.PlainToken{
		tok("GitHub", "ci", "ghp_12345"),
		tok("Stripe", "live", "sk_live=abc"),
	})
	assert.Equal(t, "GITHUB_CI=ghp_12345\nSTRIPE_LIVE=sk_live=abc\n", out)
	assert.Empty(t, Dotenv(nil))
}

func TestDotenv_RoundTripsThroughParser(t *testing.T) {
	values := map[string]string{
		"A_PLAIN":   "ghp_12345",
		"B_SPACES":  "has some spaces",
		"C_QUOTES":  `with "quotes" inside`,
		"D_HASH":    "value#notacomment",
		"E_NEWLINE": "line1\nline2",
		"F_SINGLE":  "it's",
		"G_UNICODE": "пароль-密码",
	}

	var tokens []models.PlainToken
	for key, v := range values {
		tokens = append(tokens, tok(key[:1], key[2:], v))
	}

	parsed, err := godotenv.Unmarshal(Dotenv(tokens))
	require.NoError(t, err)
	assert.Equal(t, values, parsed)
}

func TestShell(t *testing.T) {
	out := Shell([]models.PlainToken{
		tok("GitHub", "ci", "ghp_12345"),
		tok("Odd", "one", `a"b$c`+"`d`"+`\e`),
	})
	assert.Equal(t, "export GITHUB_CI=\"ghp_12345\"\nexport ODD_ONE=\"a\\\"b\\$c\\`d\\`\\\\e\"\n", out)
}

func TestRenderAndParseFormat(t *testing.T) {
	for _, s := range []string{"env", ".env", "DOTENV"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, FormatDotenv, f)
	}
	for _, s := range []string{"shell", "sh", "bash"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, FormatShell, f)
	}
	_, err := ParseFormat("json")
	assert.ErrorIs(t, err, common.ErrValidation)

	out, err := Render(FormatShell, []models.PlainToken{tok("a", "b", "c")})
	require.NoError(t, err)
	assert.Equal(t, "export A_B=\"c\"\n", out)

	_, err = Render("xml", nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Equal(t, ".env", FormatDotenv.DefaultFileName())
	assert.Equal(t, "export-env.sh", FormatShell.DefaultFileName())
}
