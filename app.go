package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"prism/ai"
	"prism/config"
	"prism/docparse"
	"prism/export"
	"prism/session"
	"prism/tui"
)

// app ties the clients, the session and the activity feed together. Both the
// interactive workflow and the one-shot commands drive a session through it.
type app struct {
	cfg       *config.Config
	analyzer  *ai.Analyzer
	extractor docparse.Extractor
	feed      *tui.ActivityFeed
	logger    *zap.Logger
	now       func() time.Time
}

// newApp builds the API clients from cfg. The API key is checked first so a
// missing key never reaches the network.
func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	if err := config.CheckConfig(cfg); err != nil {
		return nil, err
	}

	completion, err := ai.NewClient(cfg.Upstage.APIKey,
		ai.WithBaseURL(cfg.Upstage.BaseURL),
		ai.WithModel(cfg.Upstage.Model),
		ai.WithTimeout(cfg.Upstage.Timeout()),
		ai.WithLogger(logger.Named("solar")),
	)
	if err != nil {
		return nil, err
	}

	parser, err := docparse.NewClient(cfg.Upstage.APIKey,
		docparse.WithBaseURL(cfg.Upstage.DocumentBaseURL),
		docparse.WithTimeout(cfg.Upstage.Timeout()),
		docparse.WithLogger(logger.Named("docparse")),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		analyzer:  ai.NewAnalyzer(completion, cfg.Settings()),
		extractor: docparse.NewCache(parser, cfg.Cache.TTL()),
		feed:      tui.NewActivityFeed(6),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// analyze runs the multi-perspective analysis for query and records it
func (a *app) analyze(ctx context.Context, s *session.Session, query string) error {
	var result string
	err := a.feed.Track(tui.ServiceSolar, "Multi-perspective analysis", tui.TruncateQuery(query, 40), func() error {
		var err error
		result, err = a.analyzer.Analyze(ctx, query)
		return err
	})
	if err != nil {
		a.logger.Warn("analysis failed", zap.Error(err))
		return err
	}

	s.RecordAnalysis(query, result)
	a.logger.Info("analysis recorded", zap.Int("result_len", len(result)))
	return nil
}

// analyzeDocument builds a document query from the extracted text and analyzes it
func (a *app) analyzeDocument(ctx context.Context, s *session.Session, question string) error {
	if !s.HasDocument() {
		return eris.New("prism: no document text to analyze")
	}
	return a.analyze(ctx, s, ai.DocumentQuery(question, s.ExtractedText))
}

// deepDive runs the next deep dive turn. An empty followUp asks for the
// opening answer.
func (a *app) deepDive(ctx context.Context, s *session.Session, followUp string) error {
	req, err := s.DeepDiveRequest(followUp)
	if err != nil {
		return err
	}

	title := "Deep dive: " + req.Perspective
	detail := "opening"
	if followUp != "" {
		detail = fmt.Sprintf("follow-up, %d prior messages", len(req.History))
	}

	var answer string
	err = a.feed.Track(tui.ServiceSolar, title, detail, func() error {
		var err error
		answer, err = a.analyzer.DeepDive(ctx, req)
		return err
	})
	if err != nil {
		a.logger.Warn("deep dive failed", zap.String("perspective", req.Perspective), zap.Error(err))
		return err
	}

	return s.RecordDeepDive(followUp, answer)
}

// selectPerspective switches to a deep dive on key and fetches its opening answer
func (a *app) selectPerspective(ctx context.Context, s *session.Session, key string) error {
	if err := s.Select(key); err != nil {
		return err
	}
	a.feed.AddStatus("Selected perspective " + key)
	if s.NeedsInitialDeepDive() {
		return a.deepDive(ctx, s, "")
	}
	return nil
}

// extract reads path, extracts its text and stores it on the session
func (a *app) extract(ctx context.Context, s *session.Session, path string) (*docparse.Result, error) {
	var result *docparse.Result
	err := a.feed.Track(tui.ServiceDocumentParse, "Extract "+filepath.Base(path), "", func() error {
		var err error
		result, err = docparse.ExtractFile(ctx, a.extractor, path)
		return err
	})
	if err != nil {
		a.logger.Warn("extraction failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}

	s.SetDocument(result.FileName, result.Text)
	a.logger.Info("document extracted",
		zap.String("file", result.FileName),
		zap.String("source", result.Source),
		zap.Int("text_len", len(result.Text)),
	)
	return result, nil
}

// startNew drops the current analysis and starts the feed over
func (a *app) startNew(s *session.Session) {
	s.StartNew()
	a.feed.Clear()
	a.feed.AddStatus("New analysis")
}

// clearDocument forgets the uploaded document so another one can be picked
func (a *app) clearDocument(s *session.Session) {
	if !s.HasDocument() {
		return
	}
	name := s.UploadedFileName
	s.ClearDocument()
	a.feed.AddStatus("Cleared " + name)
}

// exportDocument renders the session as a Markdown export
func (a *app) exportDocument(s *session.Session) *export.Document {
	return export.Build(s, a.now())
}

// save writes the session export to dir, or the configured export directory
func (a *app) save(s *session.Session, dir string, overwrite bool) (*export.WriteResult, error) {
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	res, err := export.Write(a.exportDocument(s), export.WriteOptions{
		OutputDir:      dir,
		Overwrite:      overwrite,
		AddFrontMatter: a.cfg.Export.FrontMatter,
	})
	if err != nil {
		return nil, err
	}
	a.feed.AddStatus("Saved " + res.Path)
	a.logger.Info("export written", zap.String("path", res.Path), zap.Int64("bytes", res.Bytes))
	return res, nil
}

// currentMarkdown is the text shown and copied for the current state
func (a *app) currentMarkdown(s *session.Session) string {
	return a.exportDocument(s).Content
}
