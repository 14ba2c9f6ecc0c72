package migrate

import (
	"context"
	"os"

	"swimbooking/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

type Result struct {
	Applied int
	Current string
	Target  string
}

// Apply runs every pending migration in dir against url using the atlas
// binary found on PATH. dir must carry an atlas.sum file.
func Apply(ctx context.Context, dir, url string) (*Result, error) {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(dir)),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to prepare migration dir %s", dir)
	}
	defer func() { _ = workdir.Close() }()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return nil, errs.Wrap(err, "failed to create atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url})
	if err != nil {
		return nil, errs.Wrap(err, "failed to apply migrations")
	}
	return &Result{Applied: len(res.Applied), Current: res.Current, Target: res.Target}, nil
}
