package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/attempt"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "List and take diagnostic assessments",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments with your latest score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			results, err := d.store.Results(cmd.Context(), u.ID)
			if err != nil {
				return fmt.Errorf("load results: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s  %-28s  %-12s  %4s  %9s  %s\n",
				"ID", "Title", "Subject", "Mins", "Questions", "Score")
			fmt.Fprintln(out, strings.Repeat("─", 75))

			for _, a := range catalog.AllAssessments() {
				score := "-"
				if r, err := dashboard.ResultFor(results, a.ID); err == nil {
					score = fmt.Sprintf("%d%%", r.Score)
				}
				fmt.Fprintf(out, "%-4s  %-28s  %-12s  %4d  %9d  %s\n",
					a.ID, truncate(a.Title, 28), a.Subject, a.DurationMins, a.QuestionCount, score)
			}
			return nil
		})
	},
}

var assessmentsTakeCmd = &cobra.Command{
	Use:   "take <assessment-id>",
	Short: "Take an assessment against the clock",
	Long: "Take an assessment interactively: answer each question with its letter, " +
		"or press Enter to skip it. When the time limit runs out the answers so far " +
		"are submitted. Pass --answers to submit a full answer list without prompting.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersFlag, _ := cmd.Flags().GetString("answers")

		return withUser(cmd, func(d *deps, u store.User) error {
			a, err := catalog.GetAssessment(args[0])
			if err != nil {
				return err
			}
			qs, err := catalog.QuestionsFor(a.ID)
			if err != nil {
				return err
			}
			if a.DurationMins <= 0 {
				a.DurationMins = d.cfg.Assessment.DefaultDuration
			}
			att, err := attempt.New(a, qs)
			if err != nil {
				return err
			}
			d.logger.Info("attempt started",
				zap.String("assessment_id", a.ID),
				zap.Int("questions", att.Len()),
				zap.Bool("scripted", answersFlag != ""),
			)

			out := cmd.OutOrStdout()
			if answersFlag != "" {
				answers, err := parseAnswers(answersFlag)
				if err != nil {
					return err
				}
				if err := att.SetAnswers(answers); err != nil {
					return err
				}
			} else if err := runInteractive(cmd.Context(), att, cmd.InOrStdin(), out); err != nil {
				return err
			}

			res, err := att.Submit(d.env.Engine, u.ID)
			if err != nil {
				return err
			}
			if err := d.env.Recorder.Record(cmd.Context(), res); err != nil {
				return err
			}
			printResult(out, res)
			return nil
		})
	},
}

func init() {
	assessmentsTakeCmd.Flags().String("answers", "", "Comma-separated option indexes, -1 to skip (e.g. 1,0,2,0)")

	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsTakeCmd)
}

// parseAnswers reads "1,0,-1,2" into option indexes.
func parseAnswers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse --answers %q: %w", p, err)
		}
		answers = append(answers, n)
	}
	return answers, nil
}

// parseChoice maps "b", "B" or "2" (1-based) to an option index. Blank
// means skip.
func parseChoice(s string, options int) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return scoring.Unanswered, true, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && int(c-'A') < options {
			return int(c - 'A'), true, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= options {
		return n - 1, true, nil
	}
	return 0, false, fmt.Errorf("choose A-%c or leave blank to skip", 'A'+options-1)
}

// errTimeUp ends the question loop when the countdown expires.
var errTimeUp = errors.New("time is up")

// runInteractive prompts for each question on out, reading answers from in,
// while a countdown runs. It returns when every question has been visited,
// input ends, or time runs out.
func runInteractive(ctx context.Context, att *attempt.Attempt, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan struct{})
	countdown := &attempt.Countdown{
		Attempt:  att,
		OnExpire: func() { close(expired) },
	}
	go func() { _ = countdown.Run(ctx) }()

	// The reader may stay blocked in Scan until the process exits; the
	// command takes one attempt and returns, so it is not joined here.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	a := att.Assessment()
	fmt.Fprintf(out, "%s · %d questions · %d min\n\n", a.Title, att.Len(), att.DurationMins())

	for {
		q, i := att.Current()
		fmt.Fprintf(out, "[%s] Question %d of %d  (%s)\n%s\n",
			attempt.FormatClock(att.Remaining()), i+1, att.Len(), catalog.ConceptName(q.ConceptID), q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+j, opt)
		}

		err := askQuestion(ctx, att, q, lines, expired, out)
		switch {
		case errors.Is(err, errTimeUp):
			fmt.Fprintln(out, "\nTime is up. Submitting your answers.")
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintln(out)
		if !att.Next() {
			return nil
		}
	}
}

// askQuestion reads lines until one is a valid choice for q.
func askQuestion(ctx context.Context, att *attempt.Attempt, q catalog.Question, lines <-chan string, expired <-chan struct{}, out io.Writer) error {
	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-expired:
			return errTimeUp
		case line, ok := <-lines:
			if !ok {
				return io.EOF
			}
			choice, valid, err := parseChoice(line, len(q.Options))
			if !valid {
				fmt.Fprintln(out, err)
				continue
			}
			if choice == scoring.Unanswered {
				fmt.Fprintln(out, "Skipped.")
				return nil
			}
			if err := att.Select(choice); err != nil {
				if errors.Is(err, attempt.ErrExpired) {
					return errTimeUp
				}
				return err
			}
			if q.IsCorrect(choice) {
				fmt.Fprintln(out, "✓ Correct.")
			} else {
				fmt.Fprintf(out, "✗ The answer is %c.\n", 'A'+q.CorrectAnswer)
			}
			if q.Explanation != "" {
				fmt.Fprintln(out, "  "+q.Explanation)
			}
			return nil
		}
	}
}

// printResult writes the overall score and concept breakdown.
func printResult(out io.Writer, r scoring.Result) {
	title := r.AssessmentID
	if a, err := catalog.GetAssessment(r.AssessmentID); err == nil {
		title = a.Title
	}
	fmt.Fprintf(out, "\n%s · %d%%  (%s, %d min, result %s)\n", title, r.Score, r.Date, r.TimeTakenMins, r.ID)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, cs := range r.ConceptScores {
		fmt.Fprintf(out, "%s %-24s  %3d%%  %s\n",
			cs.Status.Icon(), truncate(catalog.ConceptName(cs.ConceptID), 24), cs.Score, cs.Status.Label())
	}

	weak := r.ByStatus(scoring.StatusWeak)
	if len(weak) == 0 {
		return
	}
	fmt.Fprintln(out, "\nRecommended study:")
	for _, cr := range dashboard.ResourcesFor(weak) {
		for _, res := range cr.Resources {
			fmt.Fprintf(out, "  %s %s (%s)\n", res.Kind.Icon(), res.Title, cr.Concept.Name)
		}
	}
	mentors := dashboard.RecommendMentors(weak, catalog.AllMentors(), dashboard.RecommendLimit)
	if len(mentors) > 0 {
		fmt.Fprintln(out, "\nMentors who can help:")
		for _, m := range mentors {
			fmt.Fprintf(out, "  %s  %s  ★ %.1f\n", m.ID, m.Name, m.Rating)
		}
	}
}
