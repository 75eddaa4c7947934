package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
	"gopkg.in/yaml.v3"
)

const runTimeout = 30 * time.Second

// profileOutput mirrors the fields of `profiler profile` the suite inspects.
type profileOutput struct {
	Planet         string    `json:"planet" yaml:"planet"`
	Variant        string    `json:"variant" yaml:"variant"`
	Samples        int       `json:"samples" yaml:"samples"`
	MassRatio      float64   `json:"massRatio" yaml:"massRatio"`
	Radii          []float64 `json:"radii" yaml:"radii"`
	Densities      []float64 `json:"densities" yaml:"densities"`
	CumulativeMass []float64 `json:"cumulativeMass" yaml:"cumulativeMass"`
}

func runProfiler(env []string, args ...string) *gexec.Session {
	cmd := exec.Command(profilerPath, args...)
	cmd.Env = append(os.Environ(), env...)
	session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
	Expect(err).NotTo(HaveOccurred())
	Eventually(session, runTimeout).Should(gexec.Exit())
	return session
}

var _ = Describe("profiler", func() {
	Context("profile", func() {
		It("should print every variant as YAML by default", func() {
			for _, variant := range []string{"reference", "linear", "constant-core", "linear-core"} {
				session := runProfiler(nil, "profile", "--variant", variant, "--core-mass", "6e25", "--samples", "512")
				Expect(session.ExitCode()).To(Equal(0), variant)

				var out profileOutput
				Expect(yaml.Unmarshal(session.Out.Contents(), &out)).To(Succeed())
				Expect(out.Variant).To(Equal(variant))
				Expect(out.Samples).To(Equal(512))
				Expect(out.Radii).To(HaveLen(512))
				Expect(out.Densities).To(HaveLen(512))
				Expect(out.MassRatio).To(BeNumerically("~", 1, 0.01))
			}
		})

		It("should read settings from the environment", func() {
			session := runProfiler([]string{"PROFILER_SAMPLES=32", "PROFILER_OUTPUT=json", "PROFILER_VARIANT=linear"}, "profile")
			Expect(session.ExitCode()).To(Equal(0))

			var out profileOutput
			Expect(json.Unmarshal(session.Out.Contents(), &out)).To(Succeed())
			Expect(out.Samples).To(Equal(32))
			Expect(out.Variant).To(Equal("linear"))
			Expect(out.MassRatio).To(BeNumerically("~", 1, 1e-12))
		})

		It("should prefer flags over a config file", func() {
			dir := GinkgoT().TempDir()
			cfg := filepath.Join(dir, "profiler.yaml")
			Expect(os.WriteFile(cfg, []byte("samples: 48\noutput: json\nvariant: linear\n"), 0o600)).To(Succeed())

			session := runProfiler(nil, "profile", "--config", cfg, "--samples", "16")
			Expect(session.ExitCode()).To(Equal(0))

			var out profileOutput
			Expect(json.Unmarshal(session.Out.Contents(), &out)).To(Succeed())
			Expect(out.Samples).To(Equal(16))
			Expect(out.Variant).To(Equal("linear"))
		})

		It("should fail on invalid input", func() {
			session := runProfiler(nil, "profile", "--variant", "constant-core", "--core-mass=-5")
			Expect(session.ExitCode()).NotTo(Equal(0))
			Expect(session.Err).To(gbytes.Say("core-mass"))
		})
	})

	Context("metrics", func() {
		It("should dump build counters in the Prometheus text format", func() {
			path := filepath.Join(GinkgoT().TempDir(), "metrics.prom")
			session := runProfiler(nil, "mass", "--all", "--core-mass", "6e25", "--samples", "64", "--metrics-file", path)
			Expect(session.ExitCode()).To(Equal(0))

			raw, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`profiler_profiles_built_total{variant="linear-core"} 1`))
			Expect(string(raw)).To(ContainSubstring(`# TYPE profiler_harmonic_distance histogram`))
		})
	})

	Context("distance", func() {
		It("should compare against the observed harmonics", func() {
			session := runProfiler(nil, "distance", "--model-a", "0.0146966,-0.000586609,3.4198e-05,-2.426e-06,1.72e-07", "-o", "json")
			Expect(session.ExitCode()).To(Equal(0))

			var out struct {
				Distance float64 `json:"distance"`
			}
			Expect(json.Unmarshal(session.Out.Contents(), &out)).To(Succeed())
			Expect(out.Distance).To(BeNumerically(">", 0))
		})
	})
})
