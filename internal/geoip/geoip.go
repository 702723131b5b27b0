package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"

	"github.com/coocood/freecache"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultCacheSize = 1024 * 1024
	cacheTTL         = 24 * time.Hour
)

// countries still measuring in pounds and feet
var imperialCountries = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

type ipInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

// Resolver maps a visitor IP to its country, and the country to a default unit system.
type Resolver struct {
	client ipInfoClient
	cache  *freecache.Cache
}

func NewResolver(token string, httpClient *http.Client, cacheSize int) *Resolver {
	return newResolver(ipinfo.NewClient(httpClient, nil, token), cacheSize)
}

func newResolver(client ipInfoClient, cacheSize int) *Resolver {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &Resolver{
		client: client,
		cache:  freecache.NewCache(cacheSize),
	}
}

// SystemForCountry returns the unit system used in the given ISO 3166 alpha-2 country.
func SystemForCountry(country string) units.System {
	if imperialCountries[strings.ToUpper(country)] {
		return units.Imperial
	}
	return units.Metric
}

// Country returns the alpha-2 country code of ip; empty for private and reserved addresses.
func (r *Resolver) Country(ctx context.Context, ip string) (string, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "geoIp.country")
	defer span.End()

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("invalid ip [%s]", ip)
	}

	key := []byte("country::" + parsed.String())
	if cached, err := r.cache.Get(key); err == nil {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		return string(cached), nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("geo ip cache get [%s]: %s", ip, err)
	}
	span.SetAttributes(attribute.Bool("user.ip.from-cache", false))

	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return "", nil
	}

	info, err := r.client.GetIPInfo(parsed)
	if err != nil {
		return "", fmt.Errorf("get ip info: %w", err)
	}

	country := ""
	if !info.Bogon {
		country = strings.ToUpper(info.Country)
	}
	if err := r.cache.Set(key, []byte(country), int(cacheTTL.Seconds())); err != nil {
		log.Errorf("geo ip cache set [%s]: %s", ip, err)
	}
	span.SetAttributes(attribute.String("user.country", country))
	return country, nil
}

// SystemFor picks the default unit system for the request's client. Any
// lookup failure falls back to metric.
func (r *Resolver) SystemFor(ctx context.Context, req *http.Request) units.System {
	ip, err := pkg.ReadUserIP(req)
	if err != nil {
		log.Debugf("system for request, read user ip: %s", err)
		return units.Metric
	}
	if ip == "localhost" {
		return units.Metric
	}

	country, err := r.Country(ctx, ip)
	if err != nil {
		log.Warnf("system for request [%s]: %s", ip, err)
		return units.Metric
	}
	return SystemForCountry(country)
}
