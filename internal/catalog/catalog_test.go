package catalog

import "testing"

func TestLoadCoversEveryOption(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	for _, option := range AllOptions() {
		entry := reg.Entry(option)
		if entry.Key != option.Key() {
			t.Errorf("option %s: entry key = %q, want %q", option.Key(), entry.Key, option.Key())
		}
		if entry.Title == "" {
			t.Errorf("option %s: missing title", option.Key())
		}
		if len(entry.Bullets) == 0 {
			t.Errorf("option %s: no bullets", option.Key())
		}
		if entry.LearnMoreURL == "" {
			t.Errorf("option %s: missing learn-more URL", option.Key())
		}
	}
}

func TestOptionKeyRoundTrip(t *testing.T) {
	for _, option := range AllOptions() {
		parsed, ok := ParseOption(option.Key())
		if !ok {
			t.Fatalf("ParseOption(%q) not found", option.Key())
		}
		if parsed != option {
			t.Errorf("ParseOption(%q) = %v, want %v", option.Key(), parsed, option)
		}
	}

	if _, ok := ParseOption("timeshare"); ok {
		t.Error("ParseOption accepted unknown key")
	}
}

func TestSecondaryOnlyFlags(t *testing.T) {
	wantSecondaryOnly := map[Option]bool{
		OptionUplist:        true,
		OptionSellerFinance: true,
	}

	for _, option := range AllOptions() {
		if got := option.SecondaryOnly(); got != wantSecondaryOnly[option] {
			t.Errorf("option %s: SecondaryOnly() = %v, want %v", option.Key(), got, wantSecondaryOnly[option])
		}
	}

	if !OptionSellerFinance.AlwaysLastSecondary() {
		t.Error("seller_finance should always be listed last among alternatives")
	}
	if OptionUplist.AlwaysLastSecondary() {
		t.Error("uplist should not be forced last")
	}
}

func TestCanonicalOrder(t *testing.T) {
	options := AllOptions()
	if len(options) != NumOptions {
		t.Fatalf("AllOptions() returned %d options, want %d", len(options), NumOptions)
	}
	if options[0] != OptionCash {
		t.Errorf("canonical order should start with cash, got %s", options[0].Key())
	}
	if options[len(options)-1] != OptionSellerFinance {
		t.Errorf("canonical order should end with seller_finance, got %s", options[len(options)-1].Key())
	}

	priorities := AllPriorities()
	if len(priorities) != NumPriorities {
		t.Fatalf("AllPriorities() returned %d priorities, want %d", len(priorities), NumPriorities)
	}
	if priorities[0] != PriorityMaximizePrice {
		t.Errorf("priority order should start with maximize_price, got %s", priorities[0].Key())
	}
}
