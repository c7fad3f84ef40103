package translate

import (
	"strings"
	"testing"
)

func TestSourceMinimalHelloEndToEnd(t *testing.T) {
	src := `class Program {
    public static void Main() {
        Console.WriteLine("Hello World!");
    }
}`
	want := "class Program {\n" +
		"    public static void main(String[] args) {\n" +
		"        System.out.println(\"Hello World!\");\n" +
		"    }\n" +
		"}\n"

	got, err := Source([]byte(src))
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestSourceInputReadingProducesValidJava(t *testing.T) {
	src := `class Program {
    public static void Main() {
        int x = int.Parse(Console.ReadLine());
        Console.WriteLine(x);
    }
}`
	got, err := Source([]byte(src))
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if !strings.Contains(got, "import java.util.Scanner;") {
		t.Errorf("expected Scanner import, got %q", got)
	}
	if !strings.Contains(got, "scanner.nextInt()") {
		t.Errorf("expected nextInt() bridge, got %q", got)
	}
	if strings.Count(got, "{") != strings.Count(got, "}") {
		t.Errorf("brace imbalance in %q", got)
	}
}

func TestSourceFullExerciseProducesBalancedIndentedOutput(t *testing.T) {
	src := `class Program {
    public static void Main() {
        int count = 0;
        bool init_b = true;
        float rate = 1.5f;
        double total = 0.0d;
        string label = "run";
        int arr[3] = {1,2,3};
        if (init_b == true) {
            count = count + 1;
        }
        else {
            count = count - 1;
        }
        if (!init_b) {
            for (int i = 0; i < 5; i++) {
                int e = i;
                while (e > 0) {
                    e--;
                }
            }
        }
        Console.WriteLine("label: " + label);
        Console.WriteLine("count: " + count);
        int more = int.Parse(Console.ReadLine());
    }
}`
	got, err := Source([]byte(src))
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}

	if strings.Count(got, "{") != strings.Count(got, "}") {
		t.Errorf("brace imbalance in %q", got)
	}
	if !strings.Contains(got, "import java.util.Scanner;") {
		t.Errorf("expected Scanner import, got %q", got)
	}
	if !strings.Contains(got, "Scanner scanner = new Scanner(System.in);") {
		t.Errorf("expected Scanner declaration, got %q", got)
	}
	if !strings.Contains(got, "int arr;") {
		t.Errorf("expected array declaration to truncate to a bare decl, got %q", got)
	}
	if !strings.Contains(got, "i++") || strings.Contains(got, "i ++") {
		t.Errorf("expected postfix ++ with no internal space, got %q", got)
	}
	if !strings.Contains(got, "e--") || strings.Contains(got, "e --") {
		t.Errorf("expected postfix -- with no internal space, got %q", got)
	}
	if !strings.Contains(got, "scanner.nextInt()") {
		t.Errorf("expected nextInt() bridge, got %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line == "" {
			continue
		}
		if strings.Contains(line, "\t") {
			t.Errorf("line contains a tab: %q", line)
		}
		trimmed := strings.TrimLeft(line, " ")
		if (len(line)-len(trimmed))%4 != 0 {
			t.Errorf("line indentation is not a multiple of four spaces: %q", line)
		}
	}
}

func TestSourceRejectsUnsupportedConstruct(t *testing.T) {
	src := `class Program {
    public static void Main() {
        var x = new Foo();
    }
}`
	if _, err := Source([]byte(src)); err == nil {
		t.Fatalf("Source() error = nil, want an unsupported-construct error")
	}
}
