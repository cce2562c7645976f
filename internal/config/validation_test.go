package config_test

import (
	"fmt"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

var _ = Describe("Validator", func() {
	var validator *config.Validator

	BeforeEach(func() {
		validator = config.NewValidator()
	})

	It("returns an error for nil options", func() {
		err := validator.Validate(nil)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})

	It("accepts the defaults", func() {
		Expect(validator.Validate(config.DefaultOptions())).To(Succeed())
	})

	DescribeTable("rejects bad options",
		func(mutate func(*config.Options), message string) {
			opts := config.DefaultOptions()
			mutate(opts)

			err := validator.Validate(opts)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
			Expect(fmt.Sprintf("%+v", err)).To(ContainSubstring(message))
		},
		Entry("empty out_dir", func(o *config.Options) { o.OutDir = "" }, "out_dir"),
		Entry("package not an identifier", func(o *config.Options) { o.Package = "9lives" }, "not a Go identifier"),
		Entry("unknown mode", func(o *config.Options) { o.Mode = "shared" }, "mode"),
		Entry("unknown log level", func(o *config.Options) { o.LogLevel = logger.Level(42) }, "log_level"),
		Entry("no manifests", func(o *config.Options) { o.Manifests = nil }, "manifests"),
		Entry("bad glob", func(o *config.Options) { o.Manifests = []string{"plugins/[a"} }, "bad pattern"),
	)

	It("counts every failure", func() {
		opts := config.DefaultOptions()
		opts.OutDir = ""
		opts.Mode = "shared"

		err := validator.Validate(opts)
		Expect(err).To(MatchError(ContainSubstring("2 error(s)")))
	})
})
