package provision_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"code.cloudfoundry.org/lager/v3"

	"github.com/sqladmin-community/sqladmin/provision"
	"github.com/sqladmin-community/sqladmin/provision/fakes"
	"github.com/sqladmin-community/sqladmin/sqlengine"
	sqlfakes "github.com/sqladmin-community/sqladmin/sqlengine/fakes"
)

var _ = Describe("Provisioner", func() {
	var (
		runner      *fakes.FakeRunner
		sqlEngine   *sqlfakes.FakeSQLEngine
		sqlProvider *sqlfakes.FakeProvider
		provisioner *provision.Provisioner
		config      sqlengine.Config
	)

	BeforeEach(func() {
		runner = &fakes.FakeRunner{}
		sqlEngine = &sqlfakes.FakeSQLEngine{}
		sqlProvider = &sqlfakes.FakeProvider{GetSQLEngineSQLEngine: sqlEngine}
		logger := lager.NewLogger("provisioner_test")
		provisioner = provision.NewProvisioner(runner, sqlProvider, logger)
		config = sqlengine.Config{
			Engine:   "postgres",
			Name:     "myapp_db",
			Username: "myapp_user",
			Password: "changeme123",
			Host:     "localhost",
			Port:     5432,
		}
	})

	It("returns error if engine is not supported", func() {
		config.Engine = "oracle"

		err := provisioner.Provision(config)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("SQL Engine 'oracle' not supported"))
	})

	Context("for PostgreSQL", func() {
		It("checks for the client binary before installing anything", func() {
			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.OutputCommands).To(ContainElement("which psql"))
			Expect(runner.RunCommands).ToNot(ContainElement(ContainSubstring("apt-get")))
		})

		It("starts and enables the service", func() {
			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.RunCommands).To(ContainElement("sudo systemctl start postgresql"))
			Expect(runner.RunCommands).To(ContainElement("sudo systemctl enable postgresql"))
		})

		It("pipes the provisioning statements into psql", func() {
			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.RunWithInputCommand).To(Equal("sudo -u postgres psql"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("CREATE USER myapp_user WITH PASSWORD 'changeme123'"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("'CREATE DATABASE myapp_db'"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("GRANT ALL PRIVILEGES ON DATABASE myapp_db TO myapp_user"))
			Expect(runner.RunWithInputInput).To(ContainSubstring(`\c myapp_db`))
		})

		It("logs the connection URIs built by the engine", func() {
			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(sqlProvider.GetSQLEngineCalled).To(BeTrue())
			Expect(sqlProvider.GetSQLEngineEngine).To(Equal("postgres"))
			Expect(sqlEngine.URICalled).To(BeTrue())
			Expect(sqlEngine.URIAddress).To(Equal("localhost"))
			Expect(sqlEngine.URIPort).To(Equal(int64(5432)))
			Expect(sqlEngine.URIDBName).To(Equal("myapp_db"))
			Expect(sqlEngine.URIUsername).To(Equal("myapp_user"))
			Expect(sqlEngine.URIPassword).To(Equal("changeme123"))
			Expect(sqlEngine.JDBCURICalled).To(BeTrue())
		})

		Context("when the engine lookup fails", func() {
			BeforeEach(func() {
				sqlProvider.GetSQLEngineError = errors.New("no engine")
			})

			It("returns error", func() {
				err := provisioner.Provision(config)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("no engine"))
			})
		})

		Context("when the client binary is missing", func() {
			BeforeEach(func() {
				runner.OutputError = errors.New("exit status 1")
			})

			It("installs the server packages first", func() {
				Expect(provisioner.Provision(config)).To(Succeed())
				Expect(runner.RunCommands[0]).To(Equal("sudo apt-get update"))
				Expect(runner.RunCommands[1]).To(Equal("sudo apt-get install -y postgresql postgresql-contrib"))
			})

			It("returns error if installation fails", func() {
				runner.RunErrors = map[string]error{
					"sudo apt-get install -y postgresql postgresql-contrib": errors.New("no network"),
				}

				err := provisioner.Provision(config)
				Expect(err).To(HaveOccurred())
				Expect(runner.RunWithInputCalled).To(BeFalse())
			})
		})

		Context("when the service cannot be started", func() {
			BeforeEach(func() {
				runner.RunErrors = map[string]error{
					"sudo systemctl start postgresql": errors.New("unit not found"),
				}
			})

			It("returns error without touching the database", func() {
				err := provisioner.Provision(config)
				Expect(err).To(HaveOccurred())
				Expect(runner.RunWithInputCalled).To(BeFalse())
			})
		})

		Context("when the admin shell fails", func() {
			BeforeEach(func() {
				runner.RunWithInputError = errors.New("psql: connection refused")
			})

			It("returns error", func() {
				err := provisioner.Provision(config)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("Failed to create database"))
			})
		})
	})

	Context("for MySQL", func() {
		BeforeEach(func() {
			config.Engine = "mysql"
			config.Port = 3306
		})

		It("uses the mysql client, packages and service", func() {
			runner.OutputError = errors.New("exit status 1")

			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.OutputCommands).To(ContainElement("which mysql"))
			Expect(runner.RunCommands).To(ContainElement("sudo apt-get install -y mysql-server"))
			Expect(runner.RunCommands).To(ContainElement("sudo systemctl start mysql"))
			Expect(runner.RunCommands).To(ContainElement("sudo systemctl enable mysql"))
		})

		It("pipes the provisioning statements into mysql", func() {
			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.RunWithInputCommand).To(Equal("sudo mysql"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("CREATE DATABASE IF NOT EXISTS myapp_db"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("CREATE USER IF NOT EXISTS 'myapp_user'@'localhost' IDENTIFIED BY 'changeme123'"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("CREATE USER IF NOT EXISTS 'myapp_user'@'%' IDENTIFIED BY 'changeme123'"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("GRANT ALL PRIVILEGES ON myapp_db.* TO 'myapp_user'@'%'"))
			Expect(runner.RunWithInputInput).To(ContainSubstring("FLUSH PRIVILEGES"))
		})

		It("accepts the mariadb alias", func() {
			config.Engine = "mariadb"

			Expect(provisioner.Provision(config)).To(Succeed())
			Expect(runner.RunWithInputCommand).To(Equal("sudo mysql"))
			Expect(sqlProvider.GetSQLEngineEngine).To(Equal("mariadb"))
		})
	})
})
