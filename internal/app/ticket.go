package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

var (
	ErrTicketConfig  = errors.New("ticket service is not configured")
	ErrTicketInvalid = errors.New("join ticket is invalid")
)

const ticketIssuer = "jass"

// TicketService signs and verifies the join tickets handed out by the solo
// match RPC. A ticket binds one user to one match for a short time.
type TicketService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTicketService(secret string, ttl time.Duration) *TicketService {
	return &TicketService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed ticket for user to join matchID.
func (s *TicketService) Issue(user, matchID string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrTicketConfig
	}
	if user == "" || matchID == "" {
		return "", fmt.Errorf("user and match are required")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss": ticketIssuer,
		"sub": user,
		"mid": matchID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, expiry and that the ticket was issued for user and
// matchID.
func (s *TicketService) Verify(ticket, user, matchID string) error {
	if s == nil || len(s.secret) == 0 {
		return ErrTicketConfig
	}

	// Expiry is checked below against s.now, not jwt-go's global clock.
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.Parse(ticket, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTicketInvalid, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrTicketInvalid
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return fmt.Errorf("%w: expired", ErrTicketInvalid)
	}
	if claims["sub"] != user || claims["mid"] != matchID {
		return fmt.Errorf("%w: issued for another user or match", ErrTicketInvalid)
	}
	return nil
}
