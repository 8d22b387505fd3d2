package domain

import "testing"

func testRequester(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(RoleRequester, "Ana", "ana@example.com", "hash", "coop.org")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func testEmployee(t *testing.T, role Role, name string) *User {
	t.Helper()
	u, err := NewUser(role, name, name+"@coop.org", "hash", "coop.org")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func TestIncidentPriorityDelegatesToUrgency(t *testing.T) {
	requester := testRequester(t)
	ticket := NewIncident("no dial tone", requester, UrgencyMinor{}, nil)

	if got := ticket.Priority(); got != 3 {
		t.Fatalf("priority = %d, want 3", got)
	}

	ticket.ChangeUrgency(UrgencyCritical{})
	if got := ticket.Priority(); got != 10 {
		t.Fatalf("priority after urgency swap = %d, want 10", got)
	}
}

func TestServiceRequestPriorityIsFixed(t *testing.T) {
	requester := testRequester(t)
	service := NewService("Broadband Internet", "home fiber plan")

	for _, kind := range []RequestKind{RequestKindActivation, RequestKindDeactivation} {
		ticket := NewServiceRequest("please process", requester, kind, service)
		if got := ticket.Priority(); got != ServiceRequestPriority {
			t.Errorf("%s priority = %d, want %d", kind, got, ServiceRequestPriority)
		}
	}
}

func TestChangeUrgencyIgnoredForServiceRequests(t *testing.T) {
	requester := testRequester(t)
	service := NewService("Cable Television", "tv bundle")
	ticket := NewServiceRequest("activate", requester, RequestKindActivation, service)

	ticket.ChangeUrgency(UrgencyCritical{})
	if ticket.Urgency != nil {
		t.Error("service request should not carry an urgency strategy")
	}
	if got := ticket.Priority(); got != ServiceRequestPriority {
		t.Errorf("priority = %d, want %d", got, ServiceRequestPriority)
	}
}

func TestAssignTechnicianMovesToInProgress(t *testing.T) {
	requester := testRequester(t)
	tech := testEmployee(t, RoleTechnician, "tomas")
	ticket := NewIncident("router down", requester, UrgencyImportant{}, nil)

	ticket.AssignTechnician(tech)
	if ticket.Status != TicketStatusInProgress {
		t.Errorf("status = %s, want %s", ticket.Status, TicketStatusInProgress)
	}
	if ticket.Assignee != tech {
		t.Error("assignee not set")
	}
}

func TestDeriveKeepsStatus(t *testing.T) {
	requester := testRequester(t)
	first := testEmployee(t, RoleTechnician, "tomas")
	second := testEmployee(t, RoleTechnician, "lucia")
	ticket := NewIncident("router down", requester, UrgencyImportant{}, nil)

	ticket.AssignTechnician(first)
	ticket.Derive(second)

	if ticket.Status != TicketStatusInProgress {
		t.Errorf("status after derive = %s, want %s", ticket.Status, TicketStatusInProgress)
	}
	if ticket.Assignee != second {
		t.Error("derive did not hand off the assignee")
	}
}

func TestResolveReopenRoundTrip(t *testing.T) {
	requester := testRequester(t)
	tech := testEmployee(t, RoleTechnician, "tomas")
	ticket := NewIncident("router down", requester, UrgencyCritical{}, nil)
	ticket.AssignTechnician(tech)

	ticket.Resolve()
	if ticket.Status != TicketStatusResolved {
		t.Fatalf("status = %s, want %s", ticket.Status, TicketStatusResolved)
	}
	if ticket.ResolvedAt == nil {
		t.Fatal("ResolvedAt not stamped")
	}

	if !ticket.Reopen() {
		t.Fatal("Reopen returned false for a resolved ticket")
	}
	if ticket.Status != TicketStatusReopened {
		t.Errorf("status = %s, want %s", ticket.Status, TicketStatusReopened)
	}
	if ticket.ResolvedAt != nil {
		t.Error("ResolvedAt not cleared on reopen")
	}
}

func TestReopenNoOpOutsideResolved(t *testing.T) {
	requester := testRequester(t)
	for _, status := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusReopened, TicketStatusClosed} {
		ticket := NewIncident("router down", requester, UrgencyMinor{}, nil)
		ticket.Status = status
		if ticket.Reopen() {
			t.Errorf("Reopen from %s should be a no-op", status)
		}
		if ticket.Status != status {
			t.Errorf("status mutated from %s to %s", status, ticket.Status)
		}
	}
}

func TestCommentsAndEventsAppendInOrder(t *testing.T) {
	requester := testRequester(t)
	ticket := NewIncident("router down", requester, UrgencyMinor{}, nil)

	ticket.AddComment("first", requester)
	ticket.AddComment("second", requester)
	if len(ticket.Comments) != 2 || ticket.Comments[0].Body != "first" || ticket.Comments[1].Body != "second" {
		t.Errorf("comments out of order: %+v", ticket.Comments)
	}

	ticket.AppendEvent(NewCreationEvent(ticket, requester))
	if len(ticket.Events) != 1 || ticket.Events[0].Kind != EventKindCreation {
		t.Errorf("events = %+v", ticket.Events)
	}
}
