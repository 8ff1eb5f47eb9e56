// Package completion provides dynamic shell completion backed by the loaded
// catalog. Completion never fails loudly: when the catalog cannot be loaded
// the shell simply gets no suggestions.
package completion

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// Loader returns the catalog to complete from.
type Loader func(ctx context.Context) (*catalogs.Catalog, error)

// Timeout bounds the catalog load done for one completion request.
const Timeout = 10 * time.Second

// Func is a cobra completion function.
type Func func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// ISBNs completes the first positional argument with catalog identifiers,
// each described by its title.
func ISBNs(load Loader) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cat, ok := catalog(cmd, load)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		prefix := normalize.Key(toComplete)
		var out []string
		for _, b := range cat.Books() {
			if b.Key == "" || !strings.HasPrefix(b.Key, prefix) {
				continue
			}
			out = append(out, b.Key+"\t"+b.Title)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// Languages completes a flag with the catalog's languages.
func Languages(load Loader) Func {
	return values(load, (*catalogs.Catalog).Languages)
}

// Years completes a flag with the catalog's publication years.
func Years(load Loader) Func {
	return values(load, (*catalogs.Catalog).Years)
}

// Fixed completes with a constant list.
func Fixed(choices ...string) Func {
	return Func(cobra.FixedCompletions(choices, cobra.ShellCompDirectiveNoFileComp))
}

func values(load Loader, get func(*catalogs.Catalog) []string) Func {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cat, ok := catalog(cmd, load)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, v := range get(cat) {
			if strings.HasPrefix(strings.ToLower(v), strings.ToLower(toComplete)) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func catalog(cmd *cobra.Command, load Loader) (*catalogs.Catalog, bool) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()
	cat, err := load(ctx)
	if err != nil {
		cobra.CompDebugln("catalog load failed: "+err.Error(), true)
		return nil, false
	}
	return cat, true
}
