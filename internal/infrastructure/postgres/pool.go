package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/Negocio-api/pkg/config"
)

// Límites por defecto del pool; MaxConns se puede ajustar con DB_MAX_CONNS.
const (
	defaultMaxConns          = 25
	defaultMinConns          = 2
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = 30 * time.Minute
	defaultHealthCheckPeriod = time.Minute
	defaultPort              = "5432"
	fallbackDNS              = "8.8.8.8:53"
)

// IPv4Lookup resuelve un hostname a una dirección IPv4.
type IPv4Lookup func(ctx context.Context, host string) (string, error)

// PoolOption ajusta la construcción del pool.
type PoolOption func(*poolSettings)

type poolSettings struct {
	lookup IPv4Lookup
	ping   bool
}

// WithIPv4Lookup reemplaza el resolver IPv4 (pruebas o redes con DNS propio).
func WithIPv4Lookup(fn IPv4Lookup) PoolOption {
	return func(s *poolSettings) { s.lookup = fn }
}

// WithoutPing omite el ping inicial; la primera consulta abre la conexión.
func WithoutPing() PoolOption {
	return func(s *poolSettings) { s.ping = false }
}

// NewPool crea el pool hacia el almacén remoto (PostgreSQL / Supabase) y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig, opts ...PoolOption) (*pgxpool.Pool, error) {
	settings := poolSettings{lookup: lookupIPv4, ping: true}
	for _, opt := range opts {
		opt(&settings)
	}

	poolConfig, err := buildPoolConfig(ctx, cfg, settings.lookup)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if settings.ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping DB: %w", err)
		}
	}
	return pool, nil
}

// buildPoolConfig arma la configuración sin abrir conexiones.
// Docker suele no tener IPv6 y Supabase puede resolver solo AAAA: el host se fija a IPv4
// cuando se puede, tanto en el DSN como en cada dial.
func buildPoolConfig(ctx context.Context, cfg config.DBConfig, lookup IPv4Lookup) (*pgxpool.Config, error) {
	dsn, err := connString(ctx, cfg, lookup)
	if err != nil {
		return nil, err
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.ConnConfig.DialFunc = ipv4Dialer(lookup)
	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = min(defaultMinConns, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = defaultMaxConnLifetime
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	poolConfig.HealthCheckPeriod = defaultHealthCheckPeriod

	// NUMERIC -> decimal.Decimal (montos de ventas).
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// connString usa DATABASE_URL si está definido; si no, el DSN armado desde DB_HOST, DB_PORT, etc.
// Si el host no resuelve a IPv4 se deja tal cual.
func connString(ctx context.Context, cfg config.DBConfig, lookup IPv4Lookup) (string, error) {
	if cfg.DatabaseURL == "" {
		if ip, err := lookup(ctx, cfg.Host); err == nil {
			cfg.Host = ip
		}
		return cfg.DSN(), nil
	}
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	ip, err := lookup(ctx, u.Hostname())
	if err != nil {
		return cfg.DatabaseURL, nil
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String(), nil
}

func ipv4Dialer(lookup IPv4Lookup) pgconn.DialFunc {
	var d net.Dialer
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ip, err := lookup(ctx, host)
		if err != nil {
			return d.DialContext(ctx, network, addr)
		}
		return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
	}
}

// lookupIPv4 prueba el resolver del sistema y, si no hay registro A, un DNS público
// (dentro de Docker el DNS puede devolver solo IPv6).
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", fallbackDNS)
		},
	}
	var lastErr error
	for _, r := range []*net.Resolver{net.DefaultResolver, public} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			lastErr = err
			continue
		}
		if len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("sin dirección IPv4 para %s", host)
	}
	return "", lastErr
}
