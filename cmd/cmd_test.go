package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs don't leak into
// each other through the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--log-file", filepath.Join(dir, "test.log")))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConceptsList(t *testing.T) {
	out, err := execute(t, "", "concepts", "list", "--subject", "mathematics")
	require.NoError(t, err)
	assert.Contains(t, out, "Fractions")
	assert.NotContains(t, out, "Grammar")

	_, err = execute(t, "", "concepts", "list", "--subject", "Astrology")
	assert.Error(t, err)
}

func TestAssessmentsTakeScripted(t *testing.T) {
	// q1 and q3 wrong: Fractions at 50% and Decimals at 0% are both weak.
	out, err := execute(t, "", "assessments", "take", "a1", "--answers", "0,0,2,0,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Math Foundations · 63%")
	assert.Contains(t, out, "Mentors who can help")
	assert.Contains(t, out, "Dr. Sarah Chen")
}

func TestAssessmentsTakeScriptedNoMentorForDecimals(t *testing.T) {
	// Only Decimals is weak and no mentor lists it.
	out, err := execute(t, "", "assessments", "take", "a1", "--answers", "1,0,2,0,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Math Foundations · 75%")
	assert.Contains(t, out, "Decimals and Place Value")
	assert.NotContains(t, out, "Mentors who can help")
}

func TestAssessmentsTakeWrongAnswerCount(t *testing.T) {
	_, err := execute(t, "", "assessments", "take", "a1", "--answers", "1,0,2,0")
	assert.ErrorContains(t, err, "got 4 answers for 5 questions")
}

func TestAssessmentsTakeInteractive(t *testing.T) {
	out, err := execute(t, "b\na\n\nz\na\nb\n", "assessments", "take", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1 of 5")
	assert.Contains(t, out, "✓ Correct.")
	assert.Contains(t, out, "Skipped.")
	assert.Contains(t, out, "choose A-D")
	// q1 and q2 right, q3 skipped, q4 and q5 right: c2 is the only miss.
	assert.Contains(t, out, "Math Foundations · 75%")
}

func TestResultsPersistInDatabaseFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnboard.db")

	_, err := execute(t, "", "assessments", "take", "a1", "--answers", "1,0,0,0,1", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "", "results", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "100%")
	assert.Equal(t, 2, strings.Count(out, "Math Foundations"), "demo result plus the new one")
}

func TestMentorsBookAndComplete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnboard.db")

	out, err := execute(t, "", "mentors", "book", "m2", "--day", "Tuesday", "--slot", "bogus", "--db", db)
	require.Error(t, err)
	assert.NotContains(t, out, "Booked")

	_, err = execute(t, "", "bookings", "complete", "b1", "--feedback", "Very helpful", "--db", db)
	require.NoError(t, err)

	out, err = execute(t, "", "bookings", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "feedback: Very helpful")

	_, err = execute(t, "", "bookings", "cancel", "b1", "--db", db)
	assert.ErrorContains(t, err, "already completed")
}

func TestMentorsListFilters(t *testing.T) {
	out, err := execute(t, "", "mentors", "list", "--search", "wilson")
	require.NoError(t, err)
	assert.Contains(t, out, "Prof. James Wilson")
	assert.NotContains(t, out, "Dr. Sarah Chen")
}

func TestNextDate(t *testing.T) {
	out, err := execute(t, "", "next-date", "Monday", "--from", "2026-01-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02\n", out)

	out, err = execute(t, "", "next-date", "wednesday", "--from", "2026-01-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-04\n", out)

	_, err = execute(t, "", "next-date", "Funday")
	assert.Error(t, err)
}

func TestProgressAndStats(t *testing.T) {
	out, err := execute(t, "", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Average score:        72%")
	assert.Contains(t, out, "Recent progress:      66%")
	assert.Contains(t, out, "30 → 38 → 45 → 55 → 62")

	out, err = execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Concepts improved:    2")
}

func TestDashboardAndCertificates(t *testing.T) {
	out, err := execute(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Alex!")
	assert.Contains(t, out, "Fractions")

	out, err = execute(t, "", "certificates", "cert1")
	require.NoError(t, err)
	assert.Contains(t, out, "Algebra Basics")
	assert.Contains(t, out, "+42%")
}

func TestResetClearsDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "learnboard.db")
	_, err := execute(t, "", "bookings", "cancel", "b1", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "", "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	// The next command reseeds the demo history.
	out, err = execute(t, "", "bookings", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "upcoming")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "learnboard (devel)\n", out)
}

func TestConceptsCheckAndDifficulty(t *testing.T) {
	out, err := execute(t, "", "concepts", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog OK")

	out, err = execute(t, "", "concepts", "list", "--difficulty", "Foundational")
	require.NoError(t, err)
	assert.Contains(t, out, "Fractions")
	assert.NotContains(t, out, "Intermediate")

	_, err = execute(t, "", "concepts", "list", "--difficulty", "expert")
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestBookingsListStatusFilter(t *testing.T) {
	out, err := execute(t, "", "bookings", "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions booked.")

	out, err = execute(t, "", "bookings", "list", "--status", "upcoming")
	require.NoError(t, err)
	assert.Contains(t, out, "b1")

	_, err = execute(t, "", "bookings", "list", "--status", "done")
	assert.Error(t, err)
}
