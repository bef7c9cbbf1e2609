package version

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func showPackageInfo(cmd *cobra.Command, args []string) error {
	pkgInfo := GetPackageInfo()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Program", pkgInfo.PackageName},
		{"Owner", pkgInfo.RepoUser},
		{"Repository Name", pkgInfo.RepoName},
		{"Repository URL", pkgInfo.RepoUrl},
		{"Homepage", pkgInfo.Homepage},
		{"Authors", pkgInfo.Authors},
		{"Version", pkgInfo.PackageVersion},
		{"Commit", pkgInfo.PackageCommit},
		{"Release Date", pkgInfo.PackageReleaseDate},
	})
	t.Render()

	return nil
}
