package i18n

import "golang.org/x/text/language"

// English falls back to the sentinel text, so only codes whose sentinel text
// differs per call site need an entry here.
var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"VALIDATION_ERROR": "Invalid input",
	},
	language.Indonesian: {
		"VALIDATION_ERROR":                    "Input tidak valid",
		"INVALID_INPUT":                       "Input tidak valid",
		"UNAUTHORIZED":                        "Autentikasi diperlukan",
		"FORBIDDEN":                           "Anda tidak memiliki akses ke sumber daya ini",
		"NOT_FOUND":                           "Data tidak ditemukan",
		"INTERNAL_ERROR":                      "Terjadi kesalahan pada server",
		"TOO_MANY_REQUESTS":                   "Terlalu banyak permintaan, coba lagi nanti",
		"IDEMPOTENCY_CONFLICT":                "Permintaan dengan kunci yang sama sedang diproses",
		"INVALID_DATE":                        "Tanggal tidak valid, gunakan format YYYY-MM-DD",
		"INVALID_DATE_RANGE":                  "Tanggal mulai harus sebelum atau sama dengan tanggal akhir",
		"RETURN_BEFORE_DEPARTURE":             "Tanggal kembali tidak boleh sebelum tanggal berangkat",
		"DAY_COUNT_MISMATCH":                  "Jumlah hari tidak sesuai dengan rentang tanggal",
		"OVERLAP_CONFLICT":                    "Pengajuan bertabrakan dengan pengajuan lain yang masih aktif",
		"EMPLOYEE_NOT_FOUND_OR_INACTIVE":      "Karyawan tidak ditemukan atau tidak aktif",
		"ALREADY_PROCESSED":                   "Pengajuan sudah diproses",
		"INVALID_STATUS":                      "Status harus APPROVED atau REJECTED",
		"INSUFFICIENT_BALANCE":                "Sisa cuti tidak mencukupi",
		"NOT_OWNER":                           "Anda bukan pemilik pengajuan cuti ini",
		"CAN_ONLY_EXTEND_APPROVED":            "Hanya cuti yang sudah disetujui yang dapat diperpanjang",
		"EXTEND_TO_DATE_MUST_BE_AFTER_RETURN": "Tanggal perpanjangan harus setelah tanggal kembali",
		"EXTENSION_REQUEST_PENDING":           "Masih ada pengajuan perpanjangan yang menunggu persetujuan",
		"CANNOT_CANCEL":                       "Cuti ini tidak dapat dibatalkan",
		"CANCELLATION_REQUEST_PENDING":        "Masih ada pengajuan pembatalan yang menunggu persetujuan",
		"ALREADY_CLOCKED_IN":                  "Anda sudah melakukan clock in hari ini",
		"ALREADY_CLOCKED_OUT":                 "Anda sudah melakukan clock out hari ini",
		"NO_CLOCK_IN_FOUND":                   "Belum ada clock in hari ini",
		"ALREADY_ON_BREAK":                    "Anda sedang istirahat",
		"NOT_ON_BREAK":                        "Anda tidak sedang istirahat",
		"UNCLOSED_BREAK":                      "Masih ada istirahat yang belum ditutup",
		"CANNOT_CLOCK_OUT_ON_BREAK":           "Tidak dapat clock out saat istirahat",
	},
}
