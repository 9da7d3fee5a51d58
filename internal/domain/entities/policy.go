package entities

// PackagePolicy constrains how a single package may be declared in a
// manifest. Loaded from the repository's requirements-policy.hcl.
type PackagePolicy struct {
	Name       string // Package name as written in the policy file
	RequirePin bool   // Record must carry an exact == pin
	Minimum    string // Pin must not be below this version
	Maximum    string // Pin must stay below this version
}

// Policy is the full set of per-package constraints, keyed by
// normalized package name.
type Policy struct {
	Packages map[string]PackagePolicy
}

// ForPackage returns the policy for the given package name (normalized
// lookup) and true when one is defined.
func (p Policy) ForPackage(name string) (PackagePolicy, bool) {
	if p.Packages == nil {
		return PackagePolicy{}, false
	}
	pol, ok := p.Packages[NormalizeName(name)]
	return pol, ok
}

// IsEmpty returns true when no package constraints are defined.
func (p Policy) IsEmpty() bool {
	return len(p.Packages) == 0
}
