package purl

import (
	"strings"

	"github.com/purl-tools/purlkit/internal/cachedregexp"
)

const (
	// A type must not start with a digit; everything else in the class is
	// fair game, including nothing at all for directly constructed values.
	typePattern = `^[A-Za-z.+-][A-Za-z0-9.+-]*$`

	qualifierKeyPattern = `^[a-z0-9._-]+$`
)

// validate is the single normalization pipeline behind New and Parse. It
// returns a fully normalized copy or the first component error encountered.
func validate(p PackageURL) (PackageURL, error) {
	purlType, err := normalizeType(p.Type)
	if err != nil {
		return PackageURL{}, err
	}

	// Qualifiers go first so per-type name folding below can consult them.
	qualifiers, err := normalizeQualifiers(p.Qualifiers)
	if err != nil {
		return PackageURL{}, err
	}

	name, err := normalizeName(purlType, p.Name, qualifiers)
	if err != nil {
		return PackageURL{}, err
	}

	normalized := PackageURL{
		Type:       purlType,
		Namespace:  normalizeNamespace(purlType, p.Namespace),
		Name:       name,
		Version:    normalizeVersion(purlType, p.Version),
		Qualifiers: qualifiers,
		Subpath:    normalizeSubpath(p.Subpath),
	}

	if err := checkTypeRules(normalized); err != nil {
		return PackageURL{}, err
	}

	return normalized, nil
}

func normalizeType(purlType string) (string, error) {
	if purlType == "" {
		return "", nil
	}
	if !cachedregexp.MustCompile(typePattern).MatchString(purlType) {
		return "", &ValidationError{
			Component: ComponentType,
			Value:     purlType,
			Reason:    "must match [A-Za-z0-9.+-]+ and must not start with a digit",
		}
	}

	return strings.ToLower(purlType), nil
}

func normalizeNamespace(purlType, namespace string) string {
	if namespace == "" {
		return ""
	}

	segments := make([]string, 0, strings.Count(namespace, "/")+1)
	for _, segment := range strings.Split(namespace, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	namespace = strings.Join(segments, "/")

	switch purlType {
	case TypeBitbucket, TypeGitHub, TypeComposer:
		namespace = strings.ToLower(namespace)
	}

	return namespace
}

func normalizeName(purlType, name string, qualifiers Qualifiers) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Component: ComponentName, Reason: "a name is required"}
	}

	switch purlType {
	case TypeBitbucket, TypeGitHub, TypeComposer:
		name = strings.ToLower(name)
	case TypePyPI:
		name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	case TypeMLflow:
		// mlflow names are case sensitive except on Azure Databricks,
		// which the repository_url qualifier identifies.
		if strings.Contains(strings.ToLower(qualifiers["repository_url"]), "azuredatabricks") {
			name = strings.ToLower(name)
		}
	}

	return name, nil
}

func normalizeVersion(purlType, version string) string {
	if purlType == TypeHuggingface {
		return strings.ToLower(version)
	}

	return version
}

// normalizeQualifiers lowercases keys, rejects duplicates and bad charsets,
// and drops entries with empty values. Values pass through untouched; they
// are never decoded or encoded after construction.
func normalizeQualifiers(qualifiers Qualifiers) (Qualifiers, error) {
	if len(qualifiers) == 0 {
		return nil, nil
	}

	normalized := make(Qualifiers, len(qualifiers))
	for key, value := range qualifiers {
		lowered := strings.ToLower(key)
		if !cachedregexp.MustCompile(qualifierKeyPattern).MatchString(lowered) {
			return nil, &ValidationError{
				Component: ComponentQualifiers,
				Value:     key,
				Reason:    "key must match [A-Za-z0-9._-]+",
			}
		}
		if value == "" {
			continue
		}
		if _, dup := normalized[lowered]; dup {
			return nil, &ValidationError{Component: ComponentQualifiers, Value: lowered, Reason: "duplicate key"}
		}
		normalized[lowered] = value
	}

	if len(normalized) == 0 {
		return nil, nil
	}

	return normalized, nil
}

// normalizeSubpath strips ".", "..", and empty segments without resolving
// them, collapsing to absent when nothing remains.
func normalizeSubpath(subpath string) string {
	subpath = strings.TrimSpace(subpath)
	if subpath == "" {
		return ""
	}

	var segments []string
	for _, segment := range strings.Split(strings.Trim(subpath, "/"), "/") {
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		segments = append(segments, segment)
	}

	return strings.Join(segments, "/")
}
