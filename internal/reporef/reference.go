package reporef

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	gitSuffixConstant                       = ".git"
	defaultHostConstant                     = "github.com"
	scpUserPrefixConstant                   = "git@"
	sshSchemeNameConstant                   = "ssh"
	pathSeparatorConstant                   = "/"
	hostPathDelimiterConstant               = ":"
	schemeDelimiterConstant                 = "://"
	spaceCharacterConstant                  = " "
	dashCharacterConstant                   = "-"
	emptyReferenceMessageConstant           = "repository reference is empty"
	invalidReferenceMessageTemplateConstant = "invalid repository reference: %s"
	scpURLTemplateConstant                  = "%s%s%s%s%s"
	httpsURLTemplateConstant                = "https://%s/%s%s"
	bareNameTemplateConstant                = "%s/%s"
	ownerNameSegmentCountConstant           = 2
)

// Reference captures the canonical parts of a repository reference.
type Reference struct {
	Owner string
	Name  string
	Host  string
}

// BareName renders the reference as owner/name without scheme or suffix.
func (reference Reference) BareName() string {
	return fmt.Sprintf(bareNameTemplateConstant, reference.Owner, reference.Name)
}

// HTTPSURL renders the canonical https clone URL for the reference.
func (reference Reference) HTTPSURL() string {
	return fmt.Sprintf(httpsURLTemplateConstant, reference.Host, reference.BareName(), gitSuffixConstant)
}

// SSHURL renders the canonical scp-style clone URL for the reference.
func (reference Reference) SSHURL() string {
	return fmt.Sprintf(scpURLTemplateConstant, scpUserPrefixConstant, reference.Host, hostPathDelimiterConstant, reference.BareName(), gitSuffixConstant)
}

// ErrEmptyReference indicates the supplied reference was empty or whitespace-only.
var ErrEmptyReference = errors.New(emptyReferenceMessageConstant)

// InvalidReferenceError indicates owner or name could not be extracted from a reference.
type InvalidReferenceError struct {
	Input string
}

// Error describes the invalid reference.
func (referenceError InvalidReferenceError) Error() string {
	return fmt.Sprintf(invalidReferenceMessageTemplateConstant, referenceError.Input)
}

// StripGitSuffix removes a literal trailing .git from the supplied value when present.
func StripGitSuffix(value string) string {
	return strings.TrimSuffix(value, gitSuffixConstant)
}

// EnsureGitSuffix returns the supplied value carrying exactly one trailing .git.
func EnsureGitSuffix(value string) string {
	return StripGitSuffix(value) + gitSuffixConstant
}

// SanitizeRepositoryName trims the name and replaces interior spaces with dashes,
// mirroring the name normalization GitHub applies during repository creation.
func SanitizeRepositoryName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), spaceCharacterConstant, dashCharacterConstant)
}

// IsSSHForm reports whether the reference is scp-style or carries an ssh scheme.
func IsSSHForm(reference string) bool {
	trimmedReference := strings.TrimSpace(reference)
	if strings.HasPrefix(trimmedReference, scpUserPrefixConstant) {
		return true
	}
	parsedURL, parseError := url.Parse(trimmedReference)
	if parseError != nil {
		return false
	}
	return parsedURL.Scheme == sshSchemeNameConstant
}

// ToSSHURL normalizes any accepted reference form to git@<host>:<owner>/<name>.git.
// Slash-less inputs that match no known form are returned with the suffix ensured.
func ToSSHURL(reference string) string {
	trimmedReference := strings.TrimSpace(reference)

	if strings.HasPrefix(trimmedReference, scpUserPrefixConstant) {
		return EnsureGitSuffix(trimmedReference)
	}

	host, repositoryPath, extracted := extractHostAndPath(trimmedReference)
	if extracted {
		return fmt.Sprintf(scpURLTemplateConstant, scpUserPrefixConstant, host, hostPathDelimiterConstant, repositoryPath, gitSuffixConstant)
	}

	return EnsureGitSuffix(trimmedReference)
}

// ToHTTPSURL normalizes any accepted reference form to https://<host>/<owner>/<name>.git.
// Slash-less inputs that match no known form are returned with the suffix ensured.
func ToHTTPSURL(reference string) string {
	trimmedReference := strings.TrimSpace(reference)

	if strings.HasPrefix(trimmedReference, scpUserPrefixConstant) {
		host, repositoryPath, extracted := splitSCPReference(trimmedReference)
		if extracted {
			return fmt.Sprintf(httpsURLTemplateConstant, host, repositoryPath, gitSuffixConstant)
		}
		return EnsureGitSuffix(trimmedReference)
	}

	host, repositoryPath, extracted := extractHostAndPath(trimmedReference)
	if extracted {
		return fmt.Sprintf(httpsURLTemplateConstant, host, repositoryPath, gitSuffixConstant)
	}

	return EnsureGitSuffix(trimmedReference)
}

// FullName extracts owner/name from any accepted reference form. The second
// return value is false when no usable path remains after stripping.
func FullName(reference string) (string, bool) {
	trimmedReference := strings.TrimSpace(reference)
	if len(trimmedReference) == 0 {
		return "", false
	}

	repositoryPath := trimmedReference
	if strings.HasPrefix(trimmedReference, scpUserPrefixConstant) {
		_, scpPath, extracted := splitSCPReference(trimmedReference)
		if !extracted {
			return "", false
		}
		repositoryPath = scpPath
	} else if parsedURL, parseError := url.Parse(trimmedReference); parseError == nil && len(parsedURL.Host) > 0 {
		repositoryPath = parsedURL.Path
	}

	normalizedPath := StripGitSuffix(strings.Trim(repositoryPath, pathSeparatorConstant))
	if len(normalizedPath) == 0 {
		return "", false
	}
	return normalizedPath, true
}

// Resolve extracts the canonical owner, name, and host from a reference.
// It returns ErrEmptyReference for blank input and InvalidReferenceError when
// owner or name cannot be extracted.
func Resolve(reference string) (Reference, error) {
	trimmedReference := strings.TrimSpace(reference)
	if len(trimmedReference) == 0 {
		return Reference{}, ErrEmptyReference
	}

	host := defaultHostConstant
	if strings.HasPrefix(trimmedReference, scpUserPrefixConstant) {
		scpHost, _, extracted := splitSCPReference(trimmedReference)
		if !extracted {
			return Reference{}, InvalidReferenceError{Input: reference}
		}
		host = scpHost
	} else if parsedURL, parseError := url.Parse(trimmedReference); parseError == nil && len(parsedURL.Host) > 0 {
		host = parsedURL.Host
	}

	fullName, nameAvailable := FullName(trimmedReference)
	if !nameAvailable {
		return Reference{}, InvalidReferenceError{Input: reference}
	}

	nameSegments := strings.SplitN(fullName, pathSeparatorConstant, ownerNameSegmentCountConstant)
	if len(nameSegments) != ownerNameSegmentCountConstant {
		return Reference{}, InvalidReferenceError{Input: reference}
	}

	owner := strings.TrimSpace(nameSegments[0])
	name := strings.TrimSpace(nameSegments[1])
	if len(owner) == 0 || len(name) == 0 || strings.Contains(name, pathSeparatorConstant) {
		return Reference{}, InvalidReferenceError{Input: reference}
	}

	return Reference{Owner: owner, Name: name, Host: host}, nil
}

// BuildRepositoryURL renders the canonical https clone URL from separate owner
// and name fields, sanitizing the name before use.
func BuildRepositoryURL(owner string, name string) (string, error) {
	trimmedOwner := strings.TrimSpace(owner)
	sanitizedName := SanitizeRepositoryName(name)
	if len(trimmedOwner) == 0 || len(sanitizedName) == 0 {
		return "", InvalidReferenceError{Input: fmt.Sprintf(bareNameTemplateConstant, owner, name)}
	}
	reference := Reference{Owner: trimmedOwner, Name: sanitizedName, Host: defaultHostConstant}
	return reference.HTTPSURL(), nil
}

// splitSCPReference splits git@host:owner/repo strings on the first colon.
// Paths containing colons are not handled; the first colon always wins.
func splitSCPReference(reference string) (string, string, bool) {
	remainder := strings.TrimPrefix(reference, scpUserPrefixConstant)
	delimiterIndex := strings.Index(remainder, hostPathDelimiterConstant)

	var host string
	var repositoryPath string
	if delimiterIndex > 0 {
		host = remainder[:delimiterIndex]
		repositoryPath = remainder[delimiterIndex+1:]
	} else {
		slashIndex := strings.Index(remainder, pathSeparatorConstant)
		if slashIndex <= 0 {
			return "", "", false
		}
		host = remainder[:slashIndex]
		repositoryPath = remainder[slashIndex+1:]
	}

	normalizedPath := StripGitSuffix(strings.Trim(repositoryPath, pathSeparatorConstant))
	if len(normalizedPath) == 0 {
		return "", "", false
	}
	return host, normalizedPath, true
}

// extractHostAndPath resolves host and owner/name path for URL and bare forms.
func extractHostAndPath(reference string) (string, string, bool) {
	parsedURL, parseError := url.Parse(reference)
	if parseError == nil && len(parsedURL.Host) > 0 {
		normalizedPath := StripGitSuffix(strings.Trim(parsedURL.Path, pathSeparatorConstant))
		if len(normalizedPath) == 0 {
			return "", "", false
		}
		return parsedURL.Host, normalizedPath, true
	}

	if strings.Contains(reference, pathSeparatorConstant) && !strings.Contains(reference, schemeDelimiterConstant) {
		normalizedPath := StripGitSuffix(strings.Trim(reference, pathSeparatorConstant))
		if len(normalizedPath) == 0 {
			return "", "", false
		}
		return defaultHostConstant, normalizedPath, true
	}

	return "", "", false
}
