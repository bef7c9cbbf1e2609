package platform

import "strings"

// parseOSRelease maps the contents of an os-release file to an Info.
func parseOSRelease(content string) Info {
	id := strings.ToLower(osReleaseField(content, "ID"))
	idLike := strings.ToLower(osReleaseField(content, "ID_LIKE"))
	release := osReleaseField(content, "VERSION_ID")
	if release == "" {
		release = unknown
	}

	switch id {
	case "ubuntu", "debian":
		return Info{Family: "debian", Distribution: id, Release: release}
	case "fedora":
		return Info{Family: "redhat", Distribution: id, Release: release}
	case "opensuse", "opensuse-leap", "opensuse-tumbleweed":
		return Info{Family: "suse", Distribution: "opensuse", Release: release}
	}

	family := unknown
	switch {
	case strings.Contains(idLike, "debian"):
		family = "debian"
	case strings.Contains(idLike, "rhel"), strings.Contains(idLike, "fedora"):
		family = "redhat"
	case strings.Contains(idLike, "suse"):
		family = "suse"
	}
	if id == "" {
		id = unknown
	}
	return Info{Family: family, Distribution: id, Release: release}
}

func osReleaseField(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, key+"=") {
			return strings.Trim(strings.TrimSpace(line[len(key)+1:]), `"'`)
		}
	}
	return ""
}
