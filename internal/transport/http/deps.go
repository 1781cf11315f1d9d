package http

import (
	"github.com/alumni-connect-api/internal/infrastructure/cas"
	"github.com/alumni-connect-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/alumni-connect-api/internal/infrastructure/jwt"
	s3infra "github.com/alumni-connect-api/internal/infrastructure/s3"
	"github.com/alumni-connect-api/internal/infrastructure/smtp"
	"github.com/alumni-connect-api/internal/metrics"
	"github.com/alumni-connect-api/internal/pkg/hash"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	ProfileRepo    *dynamo.ProfileRepo
	CommunityRepo  *dynamo.CommunityRepo
	AdminRepo      *dynamo.AdminRepo
	IdentifierRepo *dynamo.IdentifierRepo
	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	JWTProvider    *jwtinfra.Provider
	CASClient      *cas.Client
	Hasher         *hash.Hasher
	Collector      *metrics.Collector
}
