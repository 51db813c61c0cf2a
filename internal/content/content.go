package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/annotate"
	"github.com/discontent/discontent/pkg/engines"
	"github.com/discontent/discontent/pkg/link"
	"github.com/discontent/discontent/pkg/messaging"
	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/settings"
)

// Sender is the page side of the bridge. *messaging.Runtime implements it.
type Sender interface {
	SendMessage(ctx context.Context, msg messaging.Message) (messaging.Message, error)
}

// Pipeline holds what a page run needs.
type Pipeline struct {
	Extractor *engines.Extractor
	Bridge    Sender
	Settings  settings.Store
}

// Result describes one annotated page.
type Result struct {
	Engine    engines.Engine
	Links     []*engines.SearchEngineLink
	Scores    scores.ScoresResponse
	Annotated int
}

// Run identifies the engine, extracts the result links, asks for their
// scores in one round trip and annotates the page. An unsupported site
// returns a nil Result and no error. Bridge failures leave the page as it
// was and are returned.
func (p *Pipeline) Run(ctx context.Context, tok Token, page *engines.Page) (*Result, error) {
	if !tok.valid() {
		return nil, ErrInvalidToken
	}

	engine, ok := engines.Identify(page.Hostname())
	if !ok {
		utils.Log.Debugf("Unsupported site %q, nothing to do", page.Hostname())
		return nil, nil
	}

	extractor := p.Extractor
	if extractor == nil {
		extractor = &engines.Extractor{}
	}
	links, err := extractor.Extract(ctx, engine, page)
	if err != nil {
		return nil, err
	}
	utils.Log.Debugf("Extracted %d %s result links", len(links), engine)

	plain := make([]link.Link, 0, len(links))
	for _, l := range links {
		plain = append(plain, l.Link())
	}
	msg, err := messaging.NewScoresRequestMessage(scores.NewScoresRequest(plain))
	if err != nil {
		return nil, err
	}

	var (
		icons annotate.Icons
		resp  scores.ScoresResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		icons, err = settings.GetIcons(gctx, p.Settings)
		return err
	})
	g.Go(func() error {
		reply, err := p.Bridge.SendMessage(gctx, msg)
		if err != nil {
			return err
		}
		resp, err = reply.ScoresResponse()
		return err
	})
	if err := g.Wait(); err != nil {
		utils.Log.Warnf("Not annotating %s page: %v", engine, err)
		return nil, fmt.Errorf("scores round trip: %w", err)
	}

	return &Result{
		Engine:    engine,
		Links:     links,
		Scores:    resp,
		Annotated: annotate.Apply(links, resp, icons),
	}, nil
}
