package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "# comment\n\nORBSIM_TEST_A=1.5\nexport ORBSIM_TEST_B = \"quoted value\"\nORBSIM_TEST_C='x'\nnot a pair\nORBSIM_TEST_KEEP=file\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORBSIM_TEST_KEEP", "process")
	for _, k := range []string{"ORBSIM_TEST_A", "ORBSIM_TEST_B", "ORBSIM_TEST_C"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]string{
		"ORBSIM_TEST_A":    "1.5",
		"ORBSIM_TEST_B":    "quoted value",
		"ORBSIM_TEST_C":    "x",
		"ORBSIM_TEST_KEEP": "process",
	} {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("ORBSIM_TEST_F", "2.5")
	t.Setenv("ORBSIM_TEST_I", "12")
	t.Setenv("ORBSIM_TEST_U", "7")
	t.Setenv("ORBSIM_TEST_BOOL", "false")
	t.Setenv("ORBSIM_TEST_BAD", "abc")
	t.Setenv("ORBSIM_TEST_EMPTY", "")

	if v, ok, err := Float("ORBSIM_TEST_F"); err != nil || !ok || v != 2.5 {
		t.Errorf("Float = %v %v %v", v, ok, err)
	}
	if v, ok, err := Int("ORBSIM_TEST_I"); err != nil || !ok || v != 12 {
		t.Errorf("Int = %v %v %v", v, ok, err)
	}
	if v, ok, err := Uint("ORBSIM_TEST_U"); err != nil || !ok || v != 7 {
		t.Errorf("Uint = %v %v %v", v, ok, err)
	}
	if v, ok, err := Bool("ORBSIM_TEST_BOOL"); err != nil || !ok || v {
		t.Errorf("Bool = %v %v %v", v, ok, err)
	}
	if _, ok, err := Float("ORBSIM_TEST_EMPTY"); err != nil || ok {
		t.Errorf("empty variable should be reported as unset")
	}
	if _, _, err := Int("ORBSIM_TEST_BAD"); err == nil {
		t.Error("expected a parse error")
	}
}
