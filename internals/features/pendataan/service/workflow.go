// file: internals/features/pendataan/service/workflow.go
package service

import (
	model "sarpras_backend/internals/features/pendataan/model"
)

type WorkflowAction string

const (
	ActionSubmit          WorkflowAction = "SUBMIT"
	ActionApprove         WorkflowAction = "APPROVE"
	ActionRequestRevision WorkflowAction = "REQUEST_REVISION"
)

// Tabel transisi tunggal: action → (asal yang diizinkan → tujuan).
var transitions = map[WorkflowAction]map[model.SchoolStatus]model.SchoolStatus{
	ActionSubmit: {
		model.StatusDraft:    model.StatusPending,
		model.StatusRejected: model.StatusPending,
	},
	ActionApprove: {
		model.StatusPending: model.StatusApproved,
	},
	ActionRequestRevision: {
		model.StatusPending: model.StatusRejected,
	},
}

// NextStatus mengembalikan status tujuan, atau ValidationFailure kalau transisi tidak sah.
func NextStatus(from model.SchoolStatus, action WorkflowAction) (model.SchoolStatus, error) {
	table, ok := transitions[action]
	if !ok {
		return "", newValidationFailure("action", "Aksi tidak dikenal")
	}
	to, ok := table[from]
	if !ok {
		return "", newValidationFailure("status", transitionMessage(from, action))
	}
	return to, nil
}

func transitionMessage(from model.SchoolStatus, action WorkflowAction) string {
	switch action {
	case ActionSubmit:
		if from == model.StatusPending {
			return "Data sudah dikirim dan sedang menunggu verifikasi"
		}
		return "Data yang sudah disetujui tidak dapat dikirim ulang"
	case ActionApprove:
		return "Hanya data berstatus PENDING yang dapat disetujui"
	default:
		return "Hanya data berstatus PENDING yang dapat dikembalikan untuk revisi"
	}
}
