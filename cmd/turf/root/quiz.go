package root

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"turf/internal/catalog"
	"turf/internal/ui"
)

func newQuizCmd() *cobra.Command {
	var bankPath string

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Answer 5 quiz questions (2 energy)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			bank, err := catalog.QuizBank(bankPath)
			if err != nil {
				return err
			}

			session, err := svc.StartQuiz(ctx, bank)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())

			for {
				q := session.Current()
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Heading(ui.IconQuiz, fmt.Sprintf("Question %d/%d", session.Step(), session.Len())))
				fmt.Fprintln(out, q.Text)
				for i, a := range q.Answers {
					fmt.Fprintf(out, "  %d) %s\n", i+1, a)
				}

				choice := readChoice(in, out, len(q.Answers))
				ok, correctIdx, err := session.Answer(choice)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Correct!"))
				} else {
					fmt.Fprintln(out, ui.Bad.Render("✗ Wrong.")+" "+ui.Muted.Render("Answer: "+q.Answers[correctIdx]))
				}
				if !session.Next() {
					break
				}
			}

			res, err := session.Finish(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %d/%d %s\n", ui.H2.Render("Result:"), res.Correct, session.Len(), ui.Award(res.Points, "Cosmo quiz"))
			return nil
		},
	}

	cmd.Flags().StringVar(&bankPath, "bank", "", "Path to a custom quiz bank (YAML)")
	return cmd
}

// readChoice prompts until the user enters a number in [1, n]. EOF falls
// back to the first option so a closed stdin cannot wedge the session.
func readChoice(in *bufio.Scanner, out io.Writer, n int) int {
	for {
		fmt.Fprintf(out, "%s ", ui.Key.Render("Your answer (1-"+strconv.Itoa(n)+"):"))
		if !in.Scan() {
			return 0
		}
		v, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && v >= 1 && v <= n {
			return v - 1
		}
		fmt.Fprintln(out, ui.Warn.Render("Enter a number between 1 and "+strconv.Itoa(n)+"."))
	}
}
