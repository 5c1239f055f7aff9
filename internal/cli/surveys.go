package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/surveylink"
)

func (app *App) surveysCommand() *cobra.Command {
	cmd := requiresAuth(&cobra.Command{
		Use:   "surveys",
		Short: "Manage surveys",
	})

	cmd.AddCommand(
		app.surveysListCommand(),
		app.surveysGetCommand(),
		app.surveysPublishCommand(true),
		app.surveysPublishCommand(false),
		app.surveysDeleteCommand(),
		app.surveysLinkCommand(),
	)
	return cmd
}

func (app *App) surveysListCommand() *cobra.Command {
	var skip, limit int
	var status string
	var global bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List surveys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := api.Params{
				"skip":  {strconv.Itoa(skip)},
				"limit": {strconv.Itoa(limit)},
			}
			if status != "" {
				params.Set("status", status)
			}

			var (
				surveys []api.Survey
				err     error
			)
			if global {
				surveys, err = app.API.Surveys.ListGlobal(cmd.Context(), params)
			} else {
				surveys, err = app.API.Surveys.List(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "ID", "TITLE", "STATUS", "CREATED")
			for _, s := range surveys {
				t.row(strconv.Itoa(s.ID), s.Title, s.Status, s.CreatedAt.Format("2006-01-02"))
			}
			return t.flush()
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "number of surveys to skip")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of surveys to list")
	cmd.Flags().StringVar(&status, "status", "", "only list surveys with this status")
	cmd.Flags().BoolVar(&global, "global", false, "list the surveys of every organization (admin)")
	return cmd
}

func (app *App) surveysGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SURVEY_ID",
		Short: "Show a survey and its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "survey id")
			if err != nil {
				return err
			}
			survey, err := app.API.Surveys.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), survey)
		},
	}
}

func (app *App) surveysPublishCommand(publish bool) *cobra.Command {
	use, short := "publish", "Publish a survey so respondents can fill it"
	if !publish {
		use, short = "unpublish", "Stop accepting answers for a survey"
	}

	return &cobra.Command{
		Use:   use + " SURVEY_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "survey id")
			if err != nil {
				return err
			}

			var survey *api.Survey
			if publish {
				survey, err = app.API.Surveys.Publish(cmd.Context(), id)
			} else {
				survey, err = app.API.Surveys.Unpublish(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Survey %d is now %s.\n", survey.ID, survey.Status)
			return nil
		},
	}
}

func (app *App) surveysDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SURVEY_ID",
		Short: "Delete a survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "survey id")
			if err != nil {
				return err
			}
			if err := app.API.Surveys.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Survey %d deleted.\n", id)
			return nil
		},
	}
}

// surveysLinkCommand prints the fill link given to respondents. It needs no api call.
func (app *App) surveysLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link SURVEY_ID",
		Short: "Print the link respondents use to fill a survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "survey id")
			if err != nil {
				return err
			}
			link, err := surveylink.FillURL(app.PublicURL, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}
