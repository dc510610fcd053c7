package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/roomus/rooms-api/internal/dto"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	idnaProfile  = idna.Lookup
)

const (
	defaultPhoneRegion = "NL"
	maxMessageRunes    = 2000
	maxNameRunes       = 120
)

// ContactService cleans enquiry payloads before they are relayed.
// Invalid optional fields are dropped, never rejected.
type ContactService struct {
	DefaultRegion string
}

// NewContactService builds a service that parses local phone numbers in region.
func NewContactService(defaultRegion string) *ContactService {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactService{DefaultRegion: region}
}

// Prepare returns the normalized message for roomID.
func (s *ContactService) Prepare(roomID string, req dto.ContactRequest) dto.ContactMessage {
	return dto.ContactMessage{
		RoomID:  roomID,
		Name:    truncateRunes(strings.TrimSpace(req.Name), maxNameRunes),
		Email:   normalizeEmail(req.Email),
		Phone:   normalizePhone(req.Phone, s.DefaultRegion),
		Message: truncateRunes(strings.TrimSpace(req.Message), maxMessageRunes),
	}
}

// normalizeEmail lower-cases the address and converts its domain to the
// IDNA ASCII form. It returns "" for anything that is not an address.
func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	local, domain, _ := strings.Cut(email, "@")
	if !isDomainValid(domain) {
		return ""
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return ""
	}
	return local + "@" + asciiDomain
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
