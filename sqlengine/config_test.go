package sqlengine_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/sqladmin-community/sqladmin/sqlengine"
)

var _ = Describe("Config", func() {
	var config Config

	Describe("NewConfig", func() {
		envVars := []string{"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT"}

		BeforeEach(func() {
			for _, envVar := range envVars {
				os.Unsetenv(envVar)
			}
		})

		It("uses the built-in defaults", func() {
			config = NewConfig("postgres")
			Expect(config.Engine).To(Equal("postgres"))
			Expect(config.Name).To(Equal("myapp_db"))
			Expect(config.Username).To(Equal("myapp_user"))
			Expect(config.Password).To(Equal("changeme123"))
			Expect(config.Host).To(Equal("localhost"))
			Expect(config.Port).To(Equal(int64(5432)))
		})

		It("defaults the port per engine", func() {
			Expect(NewConfig("mysql").Port).To(Equal(int64(3306)))
			Expect(NewConfig("mariadb").Port).To(Equal(int64(3306)))
			Expect(NewConfig("postgres").Port).To(Equal(int64(5432)))
		})

		Context("when DB_* environment variables are set", func() {
			BeforeEach(func() {
				os.Setenv("DB_NAME", "env_db")
				os.Setenv("DB_USER", "env_user")
				os.Setenv("DB_PASSWORD", "env_password")
				os.Setenv("DB_HOST", "db.internal")
				os.Setenv("DB_PORT", "5433")
			})

			AfterEach(func() {
				for _, envVar := range envVars {
					os.Unsetenv(envVar)
				}
			})

			It("layers them over the defaults", func() {
				config = NewConfig("postgres")
				Expect(config.Name).To(Equal("env_db"))
				Expect(config.Username).To(Equal("env_user"))
				Expect(config.Password).To(Equal("env_password"))
				Expect(config.Host).To(Equal("db.internal"))
				Expect(config.Port).To(Equal(int64(5433)))
			})

			It("ignores a non-numeric DB_PORT", func() {
				os.Setenv("DB_PORT", "not-a-port")
				Expect(NewConfig("postgres").Port).To(Equal(int64(5432)))
			})
		})
	})

	Describe("Validate", func() {
		BeforeEach(func() {
			config = Config{
				Engine:   "postgres",
				Name:     "myapp_db",
				Username: "myapp_user",
				Password: "changeme123",
				Host:     "localhost",
				Port:     5432,
			}
		})

		It("does not return error if all fields are valid", func() {
			Expect(config.Validate()).To(Succeed())
		})

		It("returns error if Engine is not valid", func() {
			config.Engine = ""

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a non-empty Engine"))
		})

		It("returns error if Name is not valid", func() {
			config.Name = ""

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a non-empty Name"))
		})

		It("returns error if Username is not valid", func() {
			config.Username = ""

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a non-empty Username"))
		})

		It("returns error if Password is not valid", func() {
			config.Password = ""

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a non-empty Password"))
		})

		It("returns error if Host is not valid", func() {
			config.Host = ""

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a non-empty Host"))
		})

		It("returns error if Port is not valid", func() {
			config.Port = 0

			err := config.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Must provide a positive Port"))
		})
	})
})
