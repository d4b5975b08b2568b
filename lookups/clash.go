package lookups

import (
	"context"

	"github.com/briangreenhill/clashclient/clash"
)

// lookupFunc adapts a function to the Lookup interface
type lookupFunc struct {
	name        string
	description string
	run         func(ctx context.Context, arg string) (any, error)
}

func (l lookupFunc) Name() string        { return l.name }
func (l lookupFunc) Description() string { return l.description }

func (l lookupFunc) Run(ctx context.Context, arg string) (any, error) {
	return l.run(ctx, arg)
}

// New wraps fn as a Lookup
func New(name, description string, fn func(ctx context.Context, arg string) (any, error)) Lookup {
	return lookupFunc{name: name, description: description, run: fn}
}

// Default returns a registry with a lookup for every endpoint the client supports
func Default(c *clash.Client) *Registry {
	r := NewRegistry()
	r.Register(New("clan", "clan details by tag", func(ctx context.Context, tag string) (any, error) {
		return c.GetClan(ctx, tag)
	}))
	r.Register(New("members", "members of a clan by tag", func(ctx context.Context, tag string) (any, error) {
		return c.GetClanMembers(ctx, tag, clash.Paging{})
	}))
	r.Register(New("warlog", "finished wars of a clan by tag", func(ctx context.Context, tag string) (any, error) {
		return c.GetClanWarLog(ctx, tag, clash.Paging{})
	}))
	r.Register(New("currentwar", "current war of a clan by tag", func(ctx context.Context, tag string) (any, error) {
		return c.GetCurrentWar(ctx, tag)
	}))
	r.Register(New("player", "player details by tag", func(ctx context.Context, tag string) (any, error) {
		return c.GetPlayer(ctx, tag)
	}))
	r.Register(New("search", "clans by name", func(ctx context.Context, name string) (any, error) {
		return c.SearchClans(ctx, clash.ClanSearchRequest{Name: name})
	}))
	return r
}
