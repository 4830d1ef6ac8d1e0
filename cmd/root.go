package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/samiconductor/ghradl/config"
	"github.com/samiconductor/ghradl/internal/ghrel"
	"github.com/samiconductor/ghradl/internal/logger"
	"github.com/samiconductor/ghradl/internal/options"
	"github.com/samiconductor/ghradl/internal/releases"
	"github.com/samiconductor/ghradl/internal/render"
)

// newSource is replaced in tests to avoid network access.
var newSource = releases.NewGitHubSource

func newRootCmd() *cobra.Command {
	var (
		listAssets   options.OnceBool
		listReleases options.OnceBool
		jsonOut      options.OnceBool
		force        options.OnceBool
		verbose      options.OnceBool
		tag          options.OnceString
		pattern      options.OnceString
		output       options.OnceString
		token        options.OnceString
	)

	cmd := &cobra.Command{
		Use:   "ghradl [flags] USER REPO",
		Short: "Download or list GitHub release assets",
		Long: `ghradl downloads assets of a GitHub release, or lists releases and
their assets. By default the latest release is selected and every asset
is downloaded to the current directory; a tag, an asset name pattern,
and listing modes narrow that down.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose.Value() {
				logger.Init("debug")
			}

			tok := token.Value()
			if tok == "" {
				tok = config.Token()
			}
			pat := pattern.Value()
			if pat == "" {
				pat = config.Pattern()
			}
			out := output.Value()
			if out == "" {
				out = config.Output()
			}

			opts, err := options.New(options.Flags{
				ListAssets:   listAssets.Value(),
				ListReleases: listReleases.Value(),
				JSON:         jsonOut.Value(),
				Force:        force.Value(),
				Verbose:      verbose.Value(),
				Tag:          tag.Value(),
				Pattern:      pat,
				Output:       out,
				Token:        tok,
				TagSet:       tag.Given(),
				PatternSet:   pattern.Given(),
				OutputSet:    output.Given(),
			}, args)
			if err != nil {
				return err
			}

			// Past this point failures are runtime errors, not usage errors.
			cmd.SilenceUsage = true

			return run(cmd.Context(), cmd.OutOrStdout(), newSource(), opts)
		},
	}

	flags := cmd.Flags()
	boolFlag := func(v *options.OnceBool, name, short, usage string) {
		flags.VarP(v, name, short, usage)
		flags.Lookup(name).NoOptDefVal = "true"
	}
	boolFlag(&listAssets, "list", "l", "list assets of the selected release instead of downloading")
	boolFlag(&listReleases, "all", "A", "list all releases instead of selecting one")
	boolFlag(&jsonOut, "json", "J", "output listings as JSON")
	boolFlag(&force, "force", "f", "overwrite existing files")
	boolFlag(&verbose, "verbose", "v", "verbose diagnostics on stderr")
	flags.VarP(&tag, "tag", "r", "select the release with this tag (default: latest release)")
	flags.VarP(&pattern, "assets", "a", `regular expression filtering asset names (default ".*")`)
	flags.VarP(&output, "output", "o", `download destination directory (default ".")`)
	flags.VarP(&token, "token", "t", "GitHub API token (default: GHRADL_TOKEN or GITHUB_TOKEN)")

	cmd.AddCommand(versionCmd)
	cmd.AddCommand(newTagsCmd())
	cmd.AddCommand(newTUICmd())

	return cmd
}

// run executes the selected mode against an already-validated Options.
func run(ctx context.Context, out io.Writer, src releases.Source, opts *options.Options) error {
	if opts.Mode.AllReleases() {
		all, err := src.Releases(ctx, opts.User, opts.Repo, opts.Token)
		if err != nil {
			return err
		}
		filtered := ghrel.FilterAll(all, opts.AssetPattern)
		withAssets := opts.Mode == options.ModeListReleasesWithAssets

		if opts.JSON {
			if withAssets {
				return render.JSONReleases(out, filtered)
			}
			return render.JSONSummaries(out, filtered)
		}

		blocks := make([]render.Block, 0, len(filtered))
		for i, rel := range filtered {
			blocks = append(blocks, render.Block{
				Release:   rel,
				HadAssets: len(all[i].Assets) > 0,
			})
		}
		return render.Text(out, blocks, withAssets, opts.RawPattern)
	}

	rel, err := src.Release(ctx, opts.User, opts.Repo, opts.Tag, opts.Token)
	if err != nil {
		return err
	}
	filtered := ghrel.FilterAssets(rel, opts.AssetPattern)

	if opts.Mode == options.ModeListAssets {
		if opts.JSON {
			return render.JSONRelease(out, filtered)
		}
		blocks := []render.Block{{Release: filtered, HadAssets: len(rel.Assets) > 0}}
		return render.Text(out, blocks, true, opts.RawPattern)
	}

	// Download mode: nothing to fetch is a hard error, reported before
	// any file is touched.
	if len(filtered.Assets) == 0 {
		return &ghrel.NoMatchError{Tag: rel.Tag, Pattern: opts.RawPattern}
	}

	logger.Log.Debug("downloading assets",
		"release", rel.Tag,
		"count", len(filtered.Assets),
		"dir", opts.OutputDir,
	)
	return src.DownloadAssets(ctx, filtered, opts.OutputDir, opts.Token, opts.Force)
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	config.Init()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
