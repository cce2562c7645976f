package storage_test

import (
	"io"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/storage"
)

var _ = Describe("Error", func() {
	It("covers the assigned code range", func() {
		all := storage.Errors()

		Expect(all).To(HaveLen(78))
		Expect(storage.ErrorCount).To(Equal(80))
		Expect(all[0]).To(Equal(storage.ErrKeyNotFound))
		Expect(all[len(all)-1]).To(Equal(storage.ErrNoEncryption))
	})

	It("leaves the unassigned codes out", func() {
		Expect(storage.Error(125).Valid()).To(BeFalse())
		Expect(storage.Error(183).Valid()).To(BeFalse())
		Expect(storage.Error(200).Valid()).To(BeFalse())
		Expect(storage.Error(125).Name()).To(Equal("UNKNOWN_125"))
	})

	DescribeTable("names",
		func(e storage.Error, code int32, name string) {
			Expect(int32(e)).To(Equal(code))
			Expect(e.Name()).To(Equal(name))
			Expect(e.Error()).NotTo(BeEmpty())
		},
		Entry("key not found", storage.ErrKeyNotFound, int32(120), "KEY_NOT_FOUND"),
		Entry("wrong command", storage.ErrWrongCommand, int32(131), "WRONG_COMMAND"),
		Entry("end of file", storage.ErrEndOfFile, int32(137), "END_OF_FILE"),
		Entry("tablespace exists", storage.ErrTablespaceExists, int32(184), "TABLESPACE_EXISTS"),
		Entry("no encryption", storage.ErrNoEncryption, int32(199), "NO_ENCRYPTION"),
	)

	DescribeTable("Code",
		func(err error, want int32) {
			Expect(storage.Code(err)).To(Equal(want))
		},
		Entry("nil", nil, int32(0)),
		Entry("bare code", storage.ErrRecordDeleted, int32(134)),
		Entry("wrapped code", errors.Wrap(storage.ErrFoundDuppKey, "insert"), int32(121)),
		Entry("io.EOF", io.EOF, int32(137)),
		Entry("wrapped unexpected EOF", errors.Wrap(io.ErrUnexpectedEOF, "read"), int32(137)),
		Entry("allocation", errors.Mark(errors.New("arena exhausted"), storage.ErrAllocFailed), int32(128)),
		Entry("unassigned code", storage.Error(125), int32(122)),
		Entry("anything else", errors.New("boom"), int32(122)),
	)
})
