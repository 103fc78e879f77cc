package ivc

import (
	"errors"
	"io"
	"math/big"

	"github.com/geometryxyz/sangria-impl/folding"
	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/transcript"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// digestDomainSeparator fixes the transcript deriving cross-curve state
// digests.
const digestDomainSeparator = "sangria/ivc/digest/v1"

// ErrVerificationFailed is returned when an IVC proof does not verify.
var ErrVerificationFailed = errors.New("ivc proof verification failed")

// HalfConfig configures one half of the curve cycle: the step circuit
// run on that curve and the commitment schemes of its field.
type HalfConfig struct {
	Step   StepCircuit
	Commit vectorcommit.Config
}

// Config configures an IVC instantiation: two symmetric half-cycle
// configurations, each over the scalar field of the other's curve.
// The main half runs the step computation; the helper half carries the
// cross-curve verification trace.
type Config struct {
	Main   HalfConfig
	Helper HalfConfig
}

// PublicParameters bundles the folding public parameters of both
// curves. Write-once at Setup, thereafter read-only.
type PublicParameters struct {
	Main   *folding.PublicParameters
	Helper *folding.PublicParameters
}

// ProverKey bundles the folding prover keys and step circuits of both
// curves.
type ProverKey struct {
	Main   *folding.ProverKey
	Helper *folding.ProverKey

	MainStep   StepCircuit
	HelperStep StepCircuit
}

// VerifierKey bundles the folding verifier keys, public parameters and
// step circuits of both curves.
type VerifierKey struct {
	Main   *folding.PublicParameters
	Helper *folding.PublicParameters

	MainVK   *folding.VerifierKey
	HelperVK *folding.VerifierKey

	MainStep   StepCircuit
	HelperStep StepCircuit
}

// HalfCycleProof is one curve's share of an IVC proof: the running pair
// folding steps 0..i-1, the latest step's pair, and the cross-term
// bundle of the fold that absorbs the latest pair into the running one.
// The verifier replays that fold; the next ProveStep performs it.
type HalfCycleProof struct {
	LatestStepInstance plonk.RelaxedInstance
	LatestStepWitness  plonk.RelaxedWitness

	RunningInstance plonk.RelaxedInstance
	RunningWitness  plonk.RelaxedWitness

	CrossTerm       vectorcommit.Commitment
	CrossTermVector []*big.Int
	CrossTermHiding *big.Int
}

// Proof is an IVC proof: one half-cycle proof per curve and the number
// of steps proven so far.
type Proof struct {
	Step uint64

	Main   HalfCycleProof
	Helper HalfCycleProof
}

// Setup derives the folding public parameters of both curves from the
// configured step circuits' sizes.
func Setup(cfg Config, rng io.Reader) (*PublicParameters, error) {
	mainPP, err := folding.Setup(folding.SetupInfo{
		NumberOfGates:        cfg.Main.Step.Circuit().Gates(),
		NumberOfPublicInputs: cfg.Main.Step.PublicInputs(),
	}, cfg.Main.Commit, rng)
	if err != nil {
		return nil, err
	}

	helperPP, err := folding.Setup(folding.SetupInfo{
		NumberOfGates:        cfg.Helper.Step.Circuit().Gates(),
		NumberOfPublicInputs: cfg.Helper.Step.PublicInputs(),
	}, cfg.Helper.Commit, rng)
	if err != nil {
		return nil, err
	}

	return &PublicParameters{Main: mainPP, Helper: helperPP}, nil
}

// Encode produces the prover and verifier keys of both curves.
func Encode(pp *PublicParameters, cfg Config, rng folding.FieldSampler) (*ProverKey, *VerifierKey, error) {
	mainPK, mainVK, err := folding.Encode(pp.Main, cfg.Main.Step.Circuit(), rng)
	if err != nil {
		return nil, nil, err
	}
	helperPK, helperVK, err := folding.Encode(pp.Helper, cfg.Helper.Step.Circuit(), rng)
	if err != nil {
		return nil, nil, err
	}

	pk := &ProverKey{
		Main:       mainPK,
		Helper:     helperPK,
		MainStep:   cfg.Main.Step,
		HelperStep: cfg.Helper.Step,
	}
	vk := &VerifierKey{
		Main:       pp.Main,
		Helper:     pp.Helper,
		MainVK:     mainVK,
		HelperVK:   helperVK,
		MainStep:   cfg.Main.Step,
		HelperStep: cfg.Helper.Step,
	}
	return pk, vk, nil
}

// instanceDigest maps a relaxed instance into the helper field. It ties
// the helper curve's step state to the main curve's running instance.
func instanceDigest(seed []byte, instance plonk.RelaxedInstance, modulus *big.Int) *big.Int {
	tr := transcript.New(digestDomainSeparator, seed)
	instance.AppendToTranscript(tr)
	return tr.SampleMod(modulus)
}
