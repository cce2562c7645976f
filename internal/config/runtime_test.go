package config_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

var _ = Describe("LoadRuntimeFrom", func() {
	env := func(vars ...string) func() []string {
		return func() []string { return vars }
	}

	It("defaults to info without a log file", func() {
		rt, err := config.LoadRuntimeFrom(env())
		Expect(err).NotTo(HaveOccurred())
		Expect(rt).To(Equal(config.DefaultRuntime()))
	})

	It("reads the log variables", func() {
		rt, err := config.LoadRuntimeFrom(env(
			"MARIABRIDGE_LOG_LEVEL=debug",
			"MARIABRIDGE_LOG_FILE=/var/log/mysql/plugin.log",
			"MARIABRIDGE_OUT_DIR=ignored",
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Log.Level).To(Equal(logger.LevelDebug))
		Expect(rt.Log.File).To(Equal("/var/log/mysql/plugin.log"))
	})

	It("rejects an unknown level", func() {
		_, err := config.LoadRuntimeFrom(env("MARIABRIDGE_LOG_LEVEL=loud"))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})
})
