package Resume_test

import (
	"testing"

	"Quill/Resume"

	"github.com/stretchr/testify/require"
)

const jobDescription = `We need a backend engineer.
Required: golang, postgres and docker.
Kubernetes is preferred.`

func TestTokenize(t *testing.T) {
	tokens := Resume.Tokenize("Built Golang services with Postgres, Docker and CI.")
	require.True(t, tokens["golang"])
	require.True(t, tokens["postgres"])
	require.True(t, tokens["docker"])
	require.False(t, tokens["and"]) // stop word
	require.False(t, tokens["ci"])  // too short
}

func TestAnalyzeRequirements(t *testing.T) {
	required, preferred := Resume.AnalyzeRequirements(jobDescription)
	require.True(t, required["golang"])
	require.True(t, required["docker"])
	require.True(t, preferred["kubernetes"])
	require.False(t, required["kubernetes"])
}

func TestMatch(t *testing.T) {
	t.Run("full coverage scores higher than none", func(t *testing.T) {
		strong := Resume.Match("Backend engineer. I need golang, postgres, docker and kubernetes daily.", jobDescription)
		weak := Resume.Match("Experienced florist and event planner", jobDescription)
		require.Greater(t, strong.Score, weak.Score)
		require.Empty(t, strong.Missing["required"])
	})

	t.Run("missing terms are reported sorted", func(t *testing.T) {
		result := Resume.Match("Golang developer", jobDescription)
		require.Contains(t, result.Missing["required"], "docker")
		require.Contains(t, result.Missing["required"], "postgres")
		require.Contains(t, result.Missing["preferred"], "kubernetes")
	})

	t.Run("deterministic", func(t *testing.T) {
		first := Resume.Match("Golang developer", jobDescription)
		second := Resume.Match("Golang developer", jobDescription)
		require.Equal(t, first, second)
	})

	t.Run("score stays within 0-100", func(t *testing.T) {
		result := Resume.Match(jobDescription, jobDescription)
		require.LessOrEqual(t, result.Score, 100)
		require.GreaterOrEqual(t, result.Score, 0)
	})
}
