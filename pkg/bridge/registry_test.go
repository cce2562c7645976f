package bridge_test

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/encryption"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/storage"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

type fakeInit struct {
	initErr   error
	deinitErr error
	panics    bool
	inits     int
	deinits   int
}

func (f *fakeInit) Init() error {
	f.inits++

	if f.panics {
		panic("init exploded")
	}

	return f.initErr
}

func (f *fakeInit) Deinit() error {
	f.deinits++

	return f.deinitErr
}

func encryptionPlugin(name string, km encryption.KeyManager) *bridge.Plugin {
	return &bridge.Plugin{
		Declaration: &plugin.Declaration{Type: plugin.TypeEncryption, Name: name},
		Encryption:  bridge.NewKeyManagement(km),
	}
}

func storagePlugin(name string, engine storage.Handlerton) *bridge.Plugin {
	return &bridge.Plugin{
		Declaration: &plugin.Declaration{Type: plugin.TypeStorageEngine, Name: name},
		Storage:     bridge.NewStorageWith[bareTable](engine),
	}
}

var _ = Describe("Registry", func() {
	var (
		ctrl *gomock.Controller
		km   *encryption.MockKeyManager
		reg  *bridge.Registry
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		km = encryption.NewMockKeyManager(ctrl)
		reg = bridge.NewRegistry(logger.NewNoOpLogger())
	})

	It("registers and looks up plugins", func() {
		Expect(reg.Register(encryptionPlugin("keys", km))).To(Succeed())
		Expect(reg.Register(storagePlugin("mem", storage.NewMockHandlerton(ctrl)))).To(Succeed())

		p, ok := reg.Lookup("keys")
		Expect(ok).To(BeTrue())
		Expect(p.Name()).To(Equal("keys"))

		_, ok = reg.Lookup("missing")
		Expect(ok).To(BeFalse())

		s, ok := reg.Storage()
		Expect(ok).To(BeTrue())
		Expect(s.Name()).To(Equal("mem"))

		Expect(reg.Plugins()).To(HaveLen(2))

		first, ok := reg.At(0)
		Expect(ok).To(BeTrue())
		Expect(first.Name()).To(Equal("keys"))

		_, ok = reg.At(2)
		Expect(ok).To(BeFalse())
		_, ok = reg.At(-1)
		Expect(ok).To(BeFalse())
	})

	It("rejects duplicate names", func() {
		Expect(reg.Register(encryptionPlugin("keys", km))).To(Succeed())

		err := reg.Register(encryptionPlugin("keys", km))
		Expect(errors.Is(err, bridge.ErrDuplicatePlugin)).To(BeTrue())
	})

	It("accepts one storage engine per library", func() {
		Expect(reg.Register(storagePlugin("one", storage.NewMockHandlerton(ctrl)))).To(Succeed())
		Expect(reg.Register(storagePlugin("two", storage.NewMockHandlerton(ctrl)))).
			To(MatchError(ContainSubstring("only one storage engine")))
	})

	It("requires the tables of the declared type", func() {
		p := encryptionPlugin("keys", km)
		p.Encryption = nil

		Expect(reg.Register(p)).To(MatchError(ContainSubstring("has no slot tables")))
		Expect(reg.Register(nil)).NotTo(Succeed())
	})

	It("binds system variables", func() {
		p := encryptionPlugin("keys", km)
		Expect(p.Sysvars().Len()).To(BeZero())

		vars, err := sysvar.Build([]sysvar.Var{{Name: "rotate", Kind: sysvar.KindBool, Default: true}}, nil)
		Expect(err).NotTo(HaveOccurred())

		p.Vars = vars

		rotate, err := p.Sysvars().Bool("rotate")
		Expect(err).NotTo(HaveOccurred())
		Expect(rotate.Get()).To(BeTrue())
	})

	It("aborts on MustRegister failure", func() {
		reg.MustRegister(encryptionPlugin("keys", km))

		Expect(func() { reg.MustRegister(encryptionPlugin("keys", km)) }).To(PanicWith(Satisfy(bridge.IsABI)))
	})
})

var _ = Describe("WrapInit", func() {
	var (
		ctrl  *gomock.Controller
		km    *encryption.MockKeyManager
		hooks *fakeInit
		p     *bridge.Plugin
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		km = encryption.NewMockKeyManager(ctrl)
		hooks = &fakeInit{}
		p = encryptionPlugin("debug_key_management", km)
		p.Init = hooks
	})

	It("runs the init type and logs the load", func() {
		Expect(bridge.WrapInit(p, nil)).To(BeZero())
		Expect(hooks.inits).To(Equal(1))
		Expect(p.Loaded()).To(BeTrue())
		Expect(logBuf.String()).To(ContainSubstring("loaded plugin debug_key_management"))

		Expect(bridge.WrapDeinit(p, nil)).To(BeZero())
		Expect(hooks.deinits).To(Equal(1))
		Expect(p.Loaded()).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("unloaded plugin debug_key_management"))
	})

	It("fails the load when init fails", func() {
		hooks.initErr = errors.New("no key file")

		Expect(bridge.WrapInit(p, nil)).To(Equal(int32(1)))
		Expect(p.Loaded()).To(BeFalse())
		Expect(logBuf.String()).To(ContainSubstring("failed to load plugin debug_key_management"))
		Expect(logBuf.String()).To(ContainSubstring("no key file"))
	})

	It("fails the load when init panics", func() {
		hooks.panics = true

		Expect(bridge.WrapInit(p, nil)).To(Equal(int32(1)))
		Expect(logBuf.String()).To(ContainSubstring("init exploded"))
	})

	It("reports deinit failures", func() {
		hooks.deinitErr = errors.New("busy")

		Expect(bridge.WrapInit(p, nil)).To(BeZero())
		Expect(bridge.WrapDeinit(p, nil)).To(Equal(int32(1)))
		Expect(logBuf.String()).To(ContainSubstring("failed to unload plugin debug_key_management"))
	})

	It("fills the handlerton of a storage engine", func() {
		engine := storage.NewMockHandlerton(ctrl)
		engine.EXPECT().Flags().Return(storage.HtonCanRecreate)
		engine.EXPECT().TableFileExtensions().Return(nil)

		sp := storagePlugin("mem", engine)

		var hton abi.Handlerton
		Expect(bridge.WrapInit(sp, unsafe.Pointer(&hton))).To(BeZero())
		Expect(hton.Flags).To(Equal(uint32(storage.HtonCanRecreate)))
		Expect(hton.TablefileExtensions).NotTo(BeNil())
		Expect(*hton.TablefileExtensions).To(BeNil())
	})

	It("unloads loaded plugins on Close", func() {
		reg := bridge.NewRegistry(nil)
		Expect(reg.Register(p)).To(Succeed())
		Expect(bridge.WrapInit(p, nil)).To(BeZero())

		Expect(reg.Close()).To(Succeed())
		Expect(hooks.deinits).To(Equal(1))
		Expect(reg.Close()).To(Succeed())
		Expect(hooks.deinits).To(Equal(1))
	})
})
