package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"prism/apierr"
	"prism/perspective"
	"prism/session"
	"prism/tui"
)

// analyzeOptions describes one non-interactive run
type analyzeOptions struct {
	Question    string
	File        string
	Perspective string
	FollowUps   []string
}

func (o analyzeOptions) validate() error {
	if strings.TrimSpace(o.Question) == "" && o.File == "" {
		return eris.New("analyze: a question or --file is required")
	}
	if o.Perspective != "" {
		if _, ok := perspective.Lookup(o.Perspective); !ok {
			return eris.Wrapf(apierr.ErrUnknownPerspective, "analyze: --perspective %q", o.Perspective)
		}
	}
	if len(o.FollowUps) > 0 && o.Perspective == "" {
		return eris.New("analyze: --follow-up needs --perspective")
	}
	return nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [question]",
	Short: "Analyze a question or document from four perspectives",
	Long: `Run a multi-perspective analysis without the interactive UI.

Examples:
  # Analyze a question
  prism analyze "I'm thinking about changing jobs."

  # Ask about a document
  prism analyze --file report.pdf "Is the argument sound?"

  # Dig into one perspective and ask follow-ups
  prism analyze "How do I start a blog?" --perspective creative \
    --follow-up "What would a first post look like?"

  # Save the result as Markdown
  prism analyze "Team conflict" --save --out exports`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringP("file", "f", "", "document to analyze (pdf, png, jpg, jpeg)")
	f.StringP("perspective", "p", "", "deep dive into a perspective (traditional, practical, critical, creative)")
	f.StringArray("follow-up", nil, "follow-up question for the deep dive (repeatable)")
	f.Bool("save", false, "save the result as Markdown")
	f.String("out", "", "directory for --save (default from config)")
	f.Bool("overwrite", false, "overwrite an existing export")
	f.Bool("plain", false, "print raw Markdown instead of rendering it")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	key, _ := cmd.Flags().GetString("perspective")
	followUps, _ := cmd.Flags().GetStringArray("follow-up")
	save, _ := cmd.Flags().GetBool("save")
	out, _ := cmd.Flags().GetString("out")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	plain, _ := cmd.Flags().GetBool("plain")

	opts := analyzeOptions{
		Question:    strings.Join(args, " "),
		File:        file,
		Perspective: key,
		FollowUps:   followUps,
	}
	if err := opts.validate(); err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	s := session.New()
	if err := a.run(cmd.Context(), s, opts); err != nil {
		return err
	}

	if err := writeResult(cmd.OutOrStdout(), a.currentMarkdown(s), plain); err != nil {
		return err
	}

	if save {
		res, err := a.save(s, out, overwrite)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.SuccessStyle.Render("💾 Saved to "+res.Path))
	}
	return nil
}

// run drives s through the steps opts asks for
func (a *app) run(ctx context.Context, s *session.Session, opts analyzeOptions) error {
	if opts.File != "" {
		if _, err := a.extract(ctx, s, opts.File); err != nil {
			return err
		}
		if err := a.analyzeDocument(ctx, s, opts.Question); err != nil {
			return err
		}
	} else if err := a.analyze(ctx, s, strings.TrimSpace(opts.Question)); err != nil {
		return err
	}

	if opts.Perspective == "" {
		return nil
	}
	if err := a.selectPerspective(ctx, s, opts.Perspective); err != nil {
		return err
	}
	for _, q := range opts.FollowUps {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if err := a.deepDive(ctx, s, q); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(w io.Writer, md string, plain bool) error {
	if !plain {
		rendered, err := tui.RenderMarkdown(md, renderWidth)
		if err == nil {
			md = rendered
		}
	}
	_, err := fmt.Fprintln(w, md)
	return err
}
