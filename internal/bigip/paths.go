package bigip

import "strings"

// normalizeName converts a resource name into the iControl REST URL form,
// where partition separators are tildes: "foo" -> "~Common~foo",
// "/Common/bar" -> "~Common~bar". Names already in tilde form pass through.
func normalizeName(name, partition string) string {
	if strings.HasPrefix(name, "~") {
		return name
	}
	if strings.HasPrefix(name, "/") {
		segments := splitPathSegments(name, "/")
		return "~" + strings.Join(segments, "~")
	}
	if partition == "" {
		partition = DefaultPartition
	}
	return "~" + partition + "~" + name
}

// fullPath converts a resource name into the display form used in tool
// responses and binding lists: "foo" -> "/Common/foo",
// "~Tenant~Bar" -> "/Tenant/Bar". Slash-form names pass through.
func fullPath(name, partition string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	if strings.HasPrefix(name, "~") {
		segments := splitPathSegments(name, "~")
		return "/" + strings.Join(segments, "/")
	}
	if partition == "" {
		partition = DefaultPartition
	}
	return "/" + partition + "/" + name
}

func splitPathSegments(name, sep string) []string {
	var segments []string
	for _, segment := range strings.Split(name, sep) {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
