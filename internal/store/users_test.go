package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartingUsername_From_Email_Local_Part(t *testing.T) {
	req := require.New(t)

	name := startingUsername("alice@example.com")
	req.Regexp(regexp.MustCompile(`^alice\d{3}$`), name)
}

func TestStartingUsername_Without_At_Sign(t *testing.T) {
	req := require.New(t)

	name := startingUsername("alice")
	req.Regexp(regexp.MustCompile(`^alice\d{3}$`), name)
}

func TestNormEmail(t *testing.T) {
	require.Equal(t, "alice@example.com", normEmail("  Alice@Example.COM "))
}
