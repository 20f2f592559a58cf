package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "geo-attendance"

// Claims is the signed payload carried between check-in steps.
type Claims struct {
	Stage      types.TicketStage `json:"stage"`
	Enrollment string            `json:"enr"`
	Name       string            `json:"name"`
	Section    string            `json:"sec"`
	Course     string            `json:"crs"`
	ImageURL   string            `json:"img,omitempty"`
	Latitude   float64           `json:"lat"`
	Longitude  float64           `json:"lon"`
	LectureID  string            `json:"lec,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs t as an HS256 JWT.
func (s *TokenService) Issue(ctx context.Context, t models.Ticket) (string, error) {
	ctx = wrap.WithAction(ctx, "issue_ticket")

	issuedAt := s.now().UTC()
	claims := Claims{
		Stage:      t.Stage,
		Enrollment: t.Student.Enrollment,
		Name:       t.Student.Name,
		Section:    t.Student.Section,
		Course:     t.Student.Course,
		ImageURL:   t.Student.ImageURL,
		Latitude:   t.Reading.Latitude,
		Longitude:  t.Reading.Longitude,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   t.Student.Enrollment,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	if t.LectureID != uuid.Nil {
		claims.LectureID = t.LectureID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", wrap.Error(ctx, fmt.Errorf("failed to sign ticket: %w", err))
	}
	return signed, nil
}

// Parse verifies the signature, expiry and stage of raw.
func (s *TokenService) Parse(ctx context.Context, raw string, stage types.TicketStage) (*models.Ticket, error) {
	ctx = wrap.WithAction(ctx, "parse_ticket")

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %w", types.ErrInvalidTicket, err))
	}

	if claims.Stage != stage {
		return nil, wrap.Error(ctx, types.ErrTicketStage)
	}

	t := &models.Ticket{
		Stage: claims.Stage,
		Student: models.Student{
			Enrollment: claims.Enrollment,
			Name:       claims.Name,
			Section:    claims.Section,
			Course:     claims.Course,
			ImageURL:   claims.ImageURL,
		},
		Reading: models.Reading{
			Latitude:  claims.Latitude,
			Longitude: claims.Longitude,
		},
	}

	if claims.LectureID != "" {
		id, err := uuid.Parse(claims.LectureID)
		if err != nil {
			return nil, wrap.Error(ctx, errors.Join(types.ErrInvalidTicket, err))
		}
		t.LectureID = id
	}

	return t, nil
}
