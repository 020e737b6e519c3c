// Package generator writes blueprints to disk.
//
// # Features
//
//   - Safe file writer that refuses to overwrite unless forced
//   - Per-entry reporting: one failing file never stops the others
//   - Conflict resolution (--skip, --diff, --interactive)
//   - Myers diff between existing and generated files
//   - Dry runs that check the overwrite guard without writing
//
// # Running a blueprint
//
//	report, err := generator.Run(ctx, "user auth", blueprint.Feature("src"), generator.RunOptions{
//	    IncludeTests: true,
//	})
//	if err != nil {
//	    return err // malformed blueprint, nothing was written
//	}
//	for _, res := range report.Failed() {
//	    fmt.Println(res.Path, res.Error())
//	}
//
// Files already written stay on disk when a later entry fails. Re-running
// with Force replaces them.
package generator
