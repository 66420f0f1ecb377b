package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

// Size tokens take their leading whitespace with them.
var (
	kernelIDRe = regexp.MustCompile(`#(\d+)\s*$`)
	gwsRe      = regexp.MustCompile(`\s*GWS\[([^\]]*)\]`)
	lwsRe      = regexp.MustCompile(`\s*LWS\[([^\]]*)\]`)
)

// debris is trimmed from the ends of the name once decoration is removed.
const debris = " \t\r\n_"

// Normalizer splits kernel-timer labels into a canonical name and attributes.
type Normalizer struct {
	KernelMarker string
	ordinal      *regexp.Regexp
}

// New creates a Normalizer. separator ends the ordinal slot prefix that
// follows the kernel marker, e.g. ":" in "OpenClKernelTimer/3: name".
func New(kernelMarker, separator string) *Normalizer {
	return &Normalizer{
		KernelMarker: kernelMarker,
		ordinal:      regexp.MustCompile(`^\s*/?\s*\d{1,6}\s*` + regexp.QuoteMeta(separator) + `\s*`),
	}
}

// Normalize parses label left to right: ordinal prefix (discarded), trailing
// #id, GWS[...], LWS[...]. Every size token is removed from the name; the
// first occurrence supplies the attribute. An id left trailing once the size
// tokens are gone is extracted too. Inner whitespace is kept as written.
// Labels without decoration come back trimmed with only raw_name set.
func (n *Normalizer) Normalize(label string) model.KernelName {
	attrs := map[string]string{model.AttrRawName: label}

	work := norm.NFC.String(label)
	if i := strings.Index(work, n.KernelMarker); i != -1 && n.KernelMarker != "" {
		work = work[i+len(n.KernelMarker):]
	}
	work = n.ordinal.ReplaceAllString(work, "")

	decorated := false
	if id, rest, ok := trailingID(work); ok {
		attrs[model.AttrKernelID] = id
		work = rest
		decorated = true
	}
	for _, x := range []struct {
		re  *regexp.Regexp
		key string
	}{
		{gwsRe, model.AttrGWS},
		{lwsRe, model.AttrLWS},
	} {
		if m := x.re.FindStringSubmatch(work); m != nil {
			attrs[x.key] = m[1]
			work = x.re.ReplaceAllString(work, "")
			decorated = true
		}
	}
	if _, ok := attrs[model.AttrKernelID]; !ok && decorated {
		if id, rest, ok := trailingID(strings.TrimRight(work, debris)); ok {
			attrs[model.AttrKernelID] = id
			work = rest
		}
	}

	if !decorated {
		return model.KernelName{Name: strings.TrimSpace(work), Attrs: attrs}
	}
	return model.KernelName{Name: strings.Trim(work, debris), Attrs: attrs}
}

func trailingID(s string) (id, rest string, ok bool) {
	m := kernelIDRe.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s, false
	}
	return s[m[2]:m[3]], s[:m[0]], true
}
