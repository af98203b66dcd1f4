package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prism/docparse"
	"prism/export"
	"prism/perspective"
	"prism/session"
	"prism/tui"
)

// renderWidth is the wrap width for results printed between forms
const renderWidth = 100

// Menu values
const (
	actionText     = "text"
	actionExample  = "example"
	actionDocument = "document"
	actionAskDoc   = "ask-document"
	actionNewDoc   = "new-document"
	actionFollowUp = "follow-up"
	actionPager    = "pager"
	actionSave     = "save"
	actionCopy     = "copy"
	actionBack     = "back"
	actionNew      = "new"
	actionExit     = "exit"

	// perspective choices are prefixed so they can share a menu with actions
	perspectivePrefix = "perspective:"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	fmt.Println(tui.GetHeader())

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s := session.New()

	for {
		var next bool
		switch s.Status() {
		case session.StatusDeepDive:
			next = a.deepDiveScreen(ctx, s)
		case session.StatusAnalysisDone:
			next = a.resultScreen(ctx, s)
		default:
			next = a.inputScreen(ctx, s)
		}
		if !next {
			break
		}
	}

	fmt.Println(tui.SubtitleStyle.Render("\n🔮 Thanks for using PRISM! Bye!"))
	return nil
}

// inputScreen asks for a topic, an example or a document and runs the
// analysis. It returns false when the user wants to leave.
func (a *app) inputScreen(ctx context.Context, s *session.Session) bool {
	fmt.Println(tui.StatusPanel(s, renderWidth))

	options := []huh.Option[string]{
		huh.NewOption("✏️  Enter a topic or question", actionText),
		huh.NewOption("💡 Try an example", actionExample),
		huh.NewOption("📄 Analyze a document (PDF, PNG, JPG)", actionDocument),
	}
	if s.HasDocument() {
		options = append(options,
			huh.NewOption("📄 Ask about "+s.UploadedFileName, actionAskDoc),
			huh.NewOption("🗂  Use a different document", actionNewDoc),
		)
	}
	options = append(options, huh.NewOption("Exit", actionExit))

	choice, err := selectAction("What would you like to explore?", options)
	if err != nil || choice == actionExit {
		return false
	}

	switch choice {
	case actionExample:
		var example string
		if err := runForm(huh.NewSelect[string]().
			Title("💡 Examples").
			Description("The example is copied into the input so you can edit it").
			Options(huh.NewOptions(tui.ExamplePrompts...)...).
			Value(&example)); err != nil {
			return true
		}
		s.SetInput(example)
		return a.textInput(ctx, s)

	case actionText:
		return a.textInput(ctx, s)

	case actionDocument:
		return a.documentInput(ctx, s)

	case actionAskDoc:
		return a.documentQuestion(ctx, s)

	case actionNewDoc:
		a.clearDocument(s)
		return a.documentInput(ctx, s)
	}
	return true
}

func (a *app) textInput(ctx context.Context, s *session.Session) bool {
	input := s.Input
	err := runForm(huh.NewText().
		Title("🔮 What should PRISM look at?").
		Description("Describe a situation, a decision or a question.\nPRISM answers from four perspectives at once.").
		Placeholder("e.g. I'm thinking about changing jobs.").
		CharLimit(2000).
		Validate(requireText("Please enter a topic")).
		Value(&input))
	if err != nil {
		return true
	}

	s.SetInput(input)
	if err := withSpinner("🔮 Looking at it from four perspectives...", func() error {
		return a.analyze(ctx, s, strings.TrimSpace(input))
	}); err != nil {
		printError(err)
	}
	return true
}

func (a *app) documentInput(ctx context.Context, s *session.Session) bool {
	var path string
	startDir, _ := os.Getwd()

	exts := docparse.SupportedExtensions()
	allowed := make([]string, len(exts))
	for i, ext := range exts {
		allowed[i] = "." + ext
	}

	err := runForm(huh.NewFilePicker().
		Title("Select a document").
		Description("PDF, PNG or JPG. Text is extracted with Upstage Document Parse.").
		Picking(true).
		CurrentDirectory(startDir).
		ShowHidden(false).
		ShowSize(true).
		Height(15).
		AllowedTypes(allowed).
		Value(&path))
	if err != nil || path == "" {
		return true
	}

	var result *docparse.Result
	if err := withSpinner("📄 Reading the document...", func() error {
		var err error
		result, err = a.extract(ctx, s, path)
		return err
	}); err != nil {
		printError(err)
		return true
	}

	fmt.Println(tui.Card("✅ Text extracted",
		fmt.Sprintf("📄 %s\n%d characters (from %s)\n\n%s",
			result.FileName,
			len([]rune(result.Text)),
			result.Source,
			tui.MutedStyle.Render(tui.TruncateQuery(result.Text, 300)),
		), renderWidth))

	return a.documentQuestion(ctx, s)
}

func (a *app) documentQuestion(ctx context.Context, s *session.Session) bool {
	var question string
	err := runForm(huh.NewInput().
		Title("What would you like to know about " + s.UploadedFileName + "?").
		Description("Leave empty for a multi-perspective summary of the key points.\nFor example: 'Summarize the key points', 'Is the argument sound?', 'Suggest improvements'").
		Value(&question))
	if err != nil {
		return true
	}

	if err := withSpinner("🔮 Analyzing the document from four perspectives...", func() error {
		return a.analyzeDocument(ctx, s, question)
	}); err != nil {
		printError(err)
	}
	return true
}

// resultScreen shows the analysis and offers the deep dive perspectives
func (a *app) resultScreen(ctx context.Context, s *session.Session) bool {
	fmt.Println(tui.TitleStyle.Render("📊 Multi-perspective analysis"))
	fmt.Println(tui.MutedStyle.Render("Topic: " + tui.TruncateQuery(s.Query, 100)))
	printMarkdown(s.LastResult)
	fmt.Println(tui.RenderFeedBox(a.feed, "⚡ Activity", renderWidth))

	options := make([]huh.Option[string], 0, 10)
	for _, p := range perspective.All() {
		options = append(options, huh.NewOption(p.Label()+" deep dive", perspectivePrefix+p.Key))
	}
	options = append(options,
		huh.NewOption("📖 View in pager", actionPager),
		huh.NewOption("💾 Save as Markdown", actionSave),
		huh.NewOption("📋 Copy to clipboard", actionCopy),
		huh.NewOption("🔄 New analysis", actionNew),
		huh.NewOption("Exit", actionExit),
	)

	choice, err := selectAction("Which perspective would you like to explore further?", options)
	if err != nil || choice == actionExit {
		return false
	}

	if key, ok := strings.CutPrefix(choice, perspectivePrefix); ok {
		return a.switchPerspective(ctx, s, key)
	}
	return a.commonAction(s, choice)
}

// deepDiveScreen shows the latest deep dive answer and takes follow-ups
func (a *app) deepDiveScreen(ctx context.Context, s *session.Session) bool {
	p, _ := s.Perspective()

	if s.NeedsInitialDeepDive() {
		if err := withSpinner(p.Emoji+" Taking a closer look from the "+p.Name+" perspective...", func() error {
			return a.deepDive(ctx, s, "")
		}); err != nil {
			printError(err)
			s.ResetToAnalysis()
			return true
		}
	}

	d, _ := s.DeepDive()
	fmt.Println(tui.PerspectiveBadge(p) + tui.TitleStyle.Render(" deep dive"))
	fmt.Println(tui.MutedStyle.Render(p.Description))
	fmt.Println(tui.MutedStyle.Render("Original topic: " + tui.TruncateQuery(s.Query, 80)))
	printMarkdown(d.Result)
	fmt.Println(tui.StatusPanel(s, renderWidth))

	options := []huh.Option[string]{
		huh.NewOption("💬 Ask a follow-up question", actionFollowUp),
	}
	for _, other := range perspective.Others(p.Key) {
		options = append(options, huh.NewOption("Switch to "+other.Label(), perspectivePrefix+other.Key))
	}
	options = append(options,
		huh.NewOption("📖 View the whole conversation", actionPager),
		huh.NewOption("💾 Save as Markdown", actionSave),
		huh.NewOption("📋 Copy to clipboard", actionCopy),
		huh.NewOption("⬅️  Back to the analysis", actionBack),
		huh.NewOption("🔄 New analysis", actionNew),
		huh.NewOption("Exit", actionExit),
	)

	choice, err := selectAction("What next?", options)
	if err != nil || choice == actionExit {
		return false
	}

	if key, ok := strings.CutPrefix(choice, perspectivePrefix); ok {
		return a.switchPerspective(ctx, s, key)
	}

	switch choice {
	case actionFollowUp:
		var question string
		if err := runForm(huh.NewText().
			Title("💬 Follow-up for the " + p.Name + " perspective").
			Placeholder("e.g. What would the first concrete step be?").
			CharLimit(1000).
			Validate(requireText("Please enter a question")).
			Value(&question)); err != nil {
			return true
		}
		if err := withSpinner(p.Emoji+" Thinking it through...", func() error {
			return a.deepDive(ctx, s, strings.TrimSpace(question))
		}); err != nil {
			printError(err)
		}
		return true

	case actionBack:
		s.ResetToAnalysis()
		a.feed.AddStatus("Back to the analysis")
		return true
	}
	return a.commonAction(s, choice)
}

func (a *app) switchPerspective(ctx context.Context, s *session.Session, key string) bool {
	p, ok := perspective.Lookup(key)
	if !ok {
		fmt.Println(tui.WarningStyle.Render("⚠️ Unknown perspective " + key))
		return true
	}
	if err := withSpinner(p.Emoji+" Taking a closer look from the "+p.Name+" perspective...", func() error {
		return a.selectPerspective(ctx, s, key)
	}); err != nil {
		printError(err)
		s.ResetToAnalysis()
	}
	return true
}

// commonAction handles the entries shared by the result and deep dive menus
func (a *app) commonAction(s *session.Session, choice string) bool {
	switch choice {
	case actionPager:
		md := a.currentMarkdown(s)
		if err := tui.RunPager("🔮 PRISM", md, md); err != nil {
			printError(err)
		}

	case actionSave:
		a.saveInteractive(s)

	case actionCopy:
		if err := tui.CopyToClipboard(a.currentMarkdown(s)); err != nil {
			printError(err)
		} else {
			fmt.Println(tui.SuccessStyle.Render("📋 Copied to clipboard"))
		}

	case actionNew:
		a.startNew(s)
	}
	return true
}

func (a *app) saveInteractive(s *session.Session) {
	res, err := a.save(s, "", false)
	if eris.Is(err, export.ErrFileExists) {
		overwrite := false
		if ferr := runForm(huh.NewConfirm().
			Title("A file with this name already exists. Overwrite it?").
			Affirmative("Yes, overwrite").
			Negative("No, keep it").
			Value(&overwrite)); ferr != nil || !overwrite {
			fmt.Println(tui.MutedStyle.Render("Save cancelled."))
			return
		}
		res, err = a.save(s, "", true)
	}
	if err != nil {
		printError(err)
		return
	}
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("💾 Saved to %s (%d bytes)", res.Path, res.Bytes)))
}

func selectAction(title string, options []huh.Option[string]) (string, error) {
	var choice string
	err := runForm(huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&choice))
	return choice, err
}

func runForm(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
}

// withSpinner runs fn behind a spinner and returns fn's error
func withSpinner(title string, fn func() error) error {
	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			actionErr = fn()
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}

func requireText(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func printMarkdown(md string) {
	out, err := tui.RenderMarkdown(md, renderWidth)
	if err != nil {
		zap.L().Debug("markdown render failed, printing raw text", zap.Error(err))
	}
	fmt.Println(out)
}

func printError(err error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return
	}
	fmt.Println(tui.ErrorStyle.Render(errorText(err)))
}
