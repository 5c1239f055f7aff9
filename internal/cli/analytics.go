package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/client"
)

func (app *App) analyticsCommand() *cobra.Command {
	cmd := requiresAuth(&cobra.Command{
		Use:   "analytics",
		Short: "Show survey analytics",
	})

	cmd.AddCommand(
		&cobra.Command{
			Use:   "overview ORG_ID",
			Short: "Organization overview",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				orgID, err := parseID(args[0], "organization id")
				if err != nil {
					return err
				}
				data, err := app.API.Analytics.Overview(cmd.Context(), orgID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), data)
			},
		},
		&cobra.Command{
			Use:   "survey ORG_ID SURVEY_ID",
			Short: "Analytics for one survey",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				orgID, surveyID, err := parseOrgSurvey(args)
				if err != nil {
					return err
				}
				data, err := app.API.Analytics.Survey(cmd.Context(), orgID, surveyID, nil)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), data)
			},
		},
		&cobra.Command{
			Use:   "summary SURVEY_ID",
			Short: "AI summary of a survey's answers (can take minutes)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				surveyID, err := parseID(args[0], "survey id")
				if err != nil {
					return err
				}
				data, err := app.API.Analytics.SurveyAISummary(cmd.Context(), surveyID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), data)
			},
		},
	)
	return cmd
}

func (app *App) exportCommand() *cobra.Command {
	var format, output string

	cmd := requiresAuth(&cobra.Command{
		Use:   "export ORG_ID SURVEY_ID",
		Short: "Download a survey's analytics export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, surveyID, err := parseOrgSurvey(args)
			if err != nil {
				return err
			}

			params := api.Params{}
			if format != "" {
				params.Set("format", format)
			}

			blob, err := app.API.Analytics.Export(cmd.Context(), orgID, surveyID, params)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = blob.Filename
			}
			if path == "" {
				name := "survey_" + strconv.Itoa(surveyID) + "_export"
				if format != "" {
					name += "." + format
				}
				path = client.SanitizeFilename(name)
			}

			if err := writeExport(path, blob.Data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s).\n", path, humanize.Bytes(uint64(len(blob.Data))))
			return nil
		},
	})

	cmd.Flags().StringVar(&format, "format", "", "export format understood by the survey API, e.g. csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (defaults to the name sent by the server)")
	return cmd
}

// writeExport refuses to overwrite an existing file
func writeExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s already exists", path)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func parseOrgSurvey(args []string) (int, int, error) {
	orgID, err := parseID(args[0], "organization id")
	if err != nil {
		return 0, 0, err
	}
	surveyID, err := parseID(args[1], "survey id")
	if err != nil {
		return 0, 0, err
	}
	return orgID, surveyID, nil
}

func (app *App) llmCommand() *cobra.Command {
	cmd := requiresAuth(&cobra.Command{
		Use:   "llm",
		Short: "Model assisted survey authoring",
	})

	var count int
	generate := &cobra.Command{
		Use:   "generate-questions TOPIC",
		Short: "Suggest survey questions for a topic (can take minutes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.API.LLM.GenerateQuestions(cmd.Context(), api.GenerateQuestionsRequest{
				Topic:        args[0],
				NumQuestions: count,
			})
			if err != nil {
				return err
			}
			for i, q := range resp.Questions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
			}
			return nil
		},
	}
	generate.Flags().IntVarP(&count, "count", "n", 5, "number of questions")

	cmd.AddCommand(generate)
	return cmd
}
