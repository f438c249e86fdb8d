package build

import (
	"fmt"
	"regexp"
	"strings"
)

// Script tags written into the injector block.
const (
	RequireScript = "<script type='text/javascript' src='js/libs/require/require.js'></script>"
	MainScript    = "<script type='text/javascript' src='js/main.js'></script>"
)

var (
	injectorPattern = regexp.MustCompile(`(?s)([ \t]*)(<!--\s*injector:scripts\s*-->)(.*?)(<!--\s*endinjector\s*-->)`)
	bodyEndPattern  = regexp.MustCompile(`(?i)</body>`)
)

// BundleScript returns the script tag that loads a bundle.
func BundleScript(bundleName string) string {
	return fmt.Sprintf("<script type='text/javascript' src='%s'></script>", bundleName)
}

// LoaderScripts returns the legacy require.js bootstrap.
func LoaderScripts() []string {
	return []string{RequireScript, MainScript}
}

// InjectScripts replaces the contents of the injector:scripts block of html
// with scripts. When html has no block one is inserted before </body>.
func InjectScripts(html string, scripts []string) (string, error) {
	if m := injectorPattern.FindStringSubmatchIndex(html); m != nil {
		indent := html[m[2]:m[3]]
		open := html[m[4]:m[5]]
		closing := html[m[8]:m[9]]

		var b strings.Builder
		b.WriteString(html[:m[0]])
		b.WriteString(indent + open + "\n")
		for _, s := range scripts {
			b.WriteString(indent + s + "\n")
		}
		b.WriteString(indent + closing)
		b.WriteString(html[m[1]:])
		return b.String(), nil
	}

	loc := bodyEndPattern.FindStringIndex(html)
	if loc == nil {
		return "", fmt.Errorf("index.html has neither an injector:scripts block nor a closing body tag")
	}
	var b strings.Builder
	b.WriteString(html[:loc[0]])
	b.WriteString("<!-- injector:scripts -->\n")
	for _, s := range scripts {
		b.WriteString(s + "\n")
	}
	b.WriteString("<!-- endinjector -->\n")
	b.WriteString(html[loc[0]:])
	return b.String(), nil
}
