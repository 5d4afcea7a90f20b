// Package provision creates the database and user on a locally managed
// PostgreSQL or MySQL/MariaDB server, installing and starting the service
// first when needed. Every step is idempotent: package installation only
// happens when the client binary is missing, and all SQL is guarded so a
// second run leaves an already provisioned server untouched.
package provision

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/lager/v3"

	"github.com/sqladmin-community/sqladmin/sqlengine"
)

type profile struct {
	clientBinary string
	packages     []string
	service      string
	adminShell   []string
	statements   func(config sqlengine.Config) string
}

var profiles = map[string]profile{
	"postgres": {
		clientBinary: "psql",
		packages:     []string{"postgresql", "postgresql-contrib"},
		service:      "postgresql",
		adminShell:   []string{"sudo", "-u", "postgres", "psql"},
		statements:   postgresStatements,
	},
	"mysql": {
		clientBinary: "mysql",
		packages:     []string{"mysql-server"},
		service:      "mysql",
		adminShell:   []string{"sudo", "mysql"},
		statements:   mysqlStatements,
	},
}

type Provisioner struct {
	runner   Runner
	provider sqlengine.Provider
	logger   lager.Logger
}

func NewProvisioner(runner Runner, provider sqlengine.Provider, logger lager.Logger) *Provisioner {
	return &Provisioner{
		runner:   runner,
		provider: provider,
		logger:   logger.Session("provisioner"),
	}
}

// Provision installs and starts the database service if necessary, then
// creates the configured database and user and grants the user full
// privileges on the database.
func (p *Provisioner) Provision(config sqlengine.Config) error {
	profile, ok := profiles[canonicalEngine(config.Engine)]
	if !ok {
		return fmt.Errorf("SQL Engine '%s' not supported", config.Engine)
	}

	if err := p.ensureInstalled(profile); err != nil {
		return err
	}

	if err := p.ensureRunning(profile); err != nil {
		return err
	}

	p.logger.Info("create-database-and-user", lager.Data{"name": config.Name, "username": config.Username})

	statements := profile.statements(config)
	p.logger.Debug("admin-sql", lager.Data{"statements": statements})

	if _, err := p.runner.RunWithInput(statements, profile.adminShell[0], profile.adminShell[1:]...); err != nil {
		return fmt.Errorf("Failed to create database: %s", err)
	}

	engine, err := p.provider.GetSQLEngine(config.Engine)
	if err != nil {
		return err
	}

	p.logger.Info("setup-complete", lager.Data{
		"uri":      engine.URI(config.Host, config.Port, config.Name, config.Username, config.Password),
		"jdbc-uri": engine.JDBCURI(config.Host, config.Port, config.Name, config.Username, config.Password),
	})

	return nil
}

func (p *Provisioner) ensureInstalled(profile profile) error {
	if _, err := p.runner.Output("which", profile.clientBinary); err == nil {
		return nil
	}

	p.logger.Info("installing", lager.Data{"packages": profile.packages})

	if err := p.runner.Run("sudo", "apt-get", "update"); err != nil {
		return err
	}

	installArgs := append([]string{"apt-get", "install", "-y"}, profile.packages...)
	return p.runner.Run("sudo", installArgs...)
}

func (p *Provisioner) ensureRunning(profile profile) error {
	p.logger.Info("starting-service", lager.Data{"service": profile.service})

	if err := p.runner.Run("sudo", "systemctl", "start", profile.service); err != nil {
		return err
	}

	return p.runner.Run("sudo", "systemctl", "enable", profile.service)
}

func postgresStatements(config sqlengine.Config) string {
	return fmt.Sprintf(`
DO $$
BEGIN
    IF NOT EXISTS (SELECT FROM pg_user WHERE usename = '%[2]s') THEN
        CREATE USER %[2]s WITH PASSWORD '%[3]s';
    END IF;
END
$$;

SELECT 'CREATE DATABASE %[1]s'
WHERE NOT EXISTS (SELECT FROM pg_database WHERE datname = '%[1]s')\gexec

GRANT ALL PRIVILEGES ON DATABASE %[1]s TO %[2]s;

\c %[1]s

GRANT ALL ON SCHEMA public TO %[2]s;
GRANT ALL PRIVILEGES ON ALL TABLES IN SCHEMA public TO %[2]s;
GRANT ALL PRIVILEGES ON ALL SEQUENCES IN SCHEMA public TO %[2]s;
ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON TABLES TO %[2]s;
ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON SEQUENCES TO %[2]s;
`, config.Name, config.Username, config.Password)
}

func mysqlStatements(config sqlengine.Config) string {
	return fmt.Sprintf(`
CREATE DATABASE IF NOT EXISTS %[1]s CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci;

CREATE USER IF NOT EXISTS '%[2]s'@'localhost' IDENTIFIED BY '%[3]s';
CREATE USER IF NOT EXISTS '%[2]s'@'%%' IDENTIFIED BY '%[3]s';

GRANT ALL PRIVILEGES ON %[1]s.* TO '%[2]s'@'localhost';
GRANT ALL PRIVILEGES ON %[1]s.* TO '%[2]s'@'%%';

FLUSH PRIVILEGES;
`, config.Name, config.Username, config.Password)
}

func canonicalEngine(engine string) string {
	switch strings.ToLower(engine) {
	case "mysql", "mariadb":
		return "mysql"
	case "postgres", "postgresql":
		return "postgres"
	}

	return strings.ToLower(engine)
}
