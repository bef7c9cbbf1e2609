package version

// Set at build time with -ldflags "-X github.com/rustwasm/wasm-pack/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Change this for new packages
	RepoUser = "rustwasm"
	RepoName = "wasm-pack"
	RepoUrl  = "https://github.com/rustwasm/wasm-pack"
	Package  = "wasm-pack"

	Authors  = "Ashley Williams <ashley666ashley@gmail.com>"
	Homepage = "https://rustwasm.github.io/wasm-pack/"

	// Where the update notice sends people.
	InstallerUrl = "https://rustwasm.github.io/wasm-pack/installer/"
)

type PackageInfo struct {
	PackageName        string
	RepoUrl            string
	RepoUser           string
	RepoName           string
	PackageVersion     string
	PackageCommit      string
	PackageReleaseDate string
	Authors            string
	Homepage           string
}

// GetPackageInfo returns a struct with information about the current package
func GetPackageInfo() PackageInfo {
	return PackageInfo{
		PackageName:        Package,
		RepoUrl:            RepoUrl,
		RepoUser:           RepoUser,
		RepoName:           RepoName,
		PackageVersion:     Version,
		PackageCommit:      Commit,
		PackageReleaseDate: Date,
		Authors:            Authors,
		Homepage:           Homepage,
	}
}

// Repo returns the "owner/name" path used by the GitHub releases API.
func Repo() string {
	return RepoUser + "/" + RepoName
}
