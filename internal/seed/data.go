package seed

import (
	"clinicore/pkg/domain"
)

func drugRow(id, name string, practice domain.PracticeType, category, dosage string) domain.Document {
	return domain.Document{
		"id":             id,
		"name":           name,
		"type":           string(practice),
		"category":       category,
		"default_dosage": dosage,
	}
}

// Drugs returns the shipped drug reference set, vet and human practice
// combined. Dosage texts are opaque reference data.
func Drugs() []domain.Document {
	return []domain.Document{
		drugRow("v_atb_01", "Doxiciclina 80mg", domain.PracticeVet, "Antibiótico", "5mg/kg a cada 12h ou 10mg/kg a cada 24h, VO, por 21-28 dias."),
		drugRow("v_atb_02", "Amoxicilina + Clavulanato 250mg", domain.PracticeVet, "Antibiótico", "12,5mg/kg a cada 12h, VO, por 7-10 dias."),
		drugRow("v_atb_03", "Metronidazol 250mg", domain.PracticeVet, "Antibiótico", "15-25mg/kg a cada 12h, VO, por 5-7 dias."),
		drugRow("v_atb_04", "Enrofloxacina 50mg", domain.PracticeVet, "Antibiótico", "5mg/kg a cada 24h, VO, por 5-7 dias (evitar em filhotes)."),
		drugRow("v_atb_05", "Cefalexina 300mg", domain.PracticeVet, "Antibiótico", "22-30mg/kg a cada 12h, VO, por 7-14 dias."),
		drugRow("v_ain_01", "Meloxicam 2.0mg", domain.PracticeVet, "Anti-inflamatório", "0,1mg/kg no primeiro dia, depois 0,05mg/kg a cada 24h, VO, por 3-5 dias."),
		drugRow("v_ain_02", "Carprofeno 25mg", domain.PracticeVet, "Anti-inflamatório", "2,2mg/kg a cada 12h ou 4,4mg/kg a cada 24h, VO."),
		drugRow("v_ain_03", "Dipirona Sódica 500mg/mL", domain.PracticeVet, "Analgesia", "25mg/kg (1 gota/kg) a cada 8h, VO."),
		drugRow("v_ain_04", "Tramadol 50mg", domain.PracticeVet, "Analgesia", "2-4mg/kg a cada 8h ou 12h, VO."),
		drugRow("v_ain_05", "Gabapentina 100mg", domain.PracticeVet, "Analgesia", "5-10mg/kg a cada 12h, VO."),
		drugRow("v_gas_01", "Omeprazol 20mg", domain.PracticeVet, "Gastro", "1mg/kg a cada 24h, VO, em jejum."),
		drugRow("v_gas_02", "Ondansetrona 5mg", domain.PracticeVet, "Antiemético", "0,5-1mg/kg a cada 12h, VO."),
		drugRow("v_gas_03", "Maropitant 16mg", domain.PracticeVet, "Antiemético", "2mg/kg a cada 24h, VO, por até 5 dias."),
		drugRow("v_derm_01", "Oclacitinib 3.6mg", domain.PracticeVet, "Dermato", "0,4-0,6mg/kg a cada 12h por 14 dias, depois a cada 24h."),
		drugRow("v_derm_02", "Sarolaner 20-40kg", domain.PracticeVet, "Antiparasitário", "1 comprimido mensal conforme peso."),
		drugRow("v_derm_03", "Fluralaner", domain.PracticeVet, "Antiparasitário", "1 comprimido a cada 12 semanas."),
		drugRow("v_card_01", "Pimobendan 5mg", domain.PracticeVet, "Cardio", "0,25mg/kg a cada 12h, VO, 1h antes da refeição."),
		drugRow("v_card_02", "Benazepril 5mg", domain.PracticeVet, "Cardio", "0,25-0,5mg/kg a cada 24h, VO."),
		drugRow("v_card_03", "Furosemida 40mg", domain.PracticeVet, "Cardio", "1-4mg/kg a cada 12h conforme edema, VO."),
		drugRow("h_cv_01", "Losartana Potássica 50mg", domain.PracticeHuman, "Anti-hipertensivo", "Tomar 1 comprimido via oral de 12/12h ou 24/24h."),
		drugRow("h_cv_02", "Enalapril 20mg", domain.PracticeHuman, "Anti-hipertensivo", "Tomar 1 comprimido via oral de 12/12h."),
		drugRow("h_cv_03", "Anlodipino 5mg", domain.PracticeHuman, "Anti-hipertensivo", "Tomar 1 comprimido via oral 1x ao dia."),
		drugRow("h_cv_04", "Hidroclorotiazida 25mg", domain.PracticeHuman, "Diurético", "Tomar 1 comprimido via oral pela manhã."),
		drugRow("h_cv_05", "Sinvastatina 20mg", domain.PracticeHuman, "Hipolipemiante", "Tomar 1 comprimido via oral à noite."),
		drugRow("h_dor_01", "Dipirona Monohidratada 1g", domain.PracticeHuman, "Analgesia", "Tomar 1 comprimido via oral de 6/6h se dor ou febre."),
		drugRow("h_dor_02", "Paracetamol 750mg", domain.PracticeHuman, "Analgesia", "Tomar 1 comprimido via oral de 8/8h (máx 4g/dia)."),
		drugRow("h_dor_03", "Ibuprofeno 600mg", domain.PracticeHuman, "Anti-inflamatório", "Tomar 1 comprimido via oral de 8/8h após refeições, por 3-5 dias."),
		drugRow("h_dor_04", "Nimesulida 100mg", domain.PracticeHuman, "Anti-inflamatório", "Tomar 1 comprimido via oral de 12/12h por 3 a 5 dias."),
		drugRow("h_dor_05", "Tramadol 50mg", domain.PracticeHuman, "Opioide", "Tomar 1 comprimido de 8/8h se dor intensa."),
		drugRow("h_atb_01", "Amoxicilina 500mg", domain.PracticeHuman, "Antibiótico", "Tomar 1 cápsula via oral de 8/8h por 7 dias."),
		drugRow("h_atb_02", "Amoxicilina + Clavulanato 875mg", domain.PracticeHuman, "Antibiótico", "Tomar 1 comprimido via oral de 12/12h por 7-10 dias."),
		drugRow("h_atb_03", "Azitromicina 500mg", domain.PracticeHuman, "Antibiótico", "Tomar 1 comprimido via oral 1x ao dia por 3 ou 5 dias."),
		drugRow("h_atb_04", "Ciprofloxacino 500mg", domain.PracticeHuman, "Antibiótico", "Tomar 1 comprimido via oral de 12/12h por 7-14 dias."),
		drugRow("h_atb_05", "Cefalexina 500mg", domain.PracticeHuman, "Antibiótico", "Tomar 1 comprimido via oral de 6/6h por 7 dias."),
		drugRow("h_met_01", "Metformina 850mg", domain.PracticeHuman, "Antidiabético", "Tomar 1 ou 2 comprimidos após o jantar."),
		drugRow("h_met_02", "Omeprazol 20mg", domain.PracticeHuman, "Gastro", "Tomar 1 cápsula em jejum pela manhã."),
	}
}

func templateRow(id, title, organ, text string) domain.Document {
	return domain.Document{
		"id":    id,
		"title": title,
		"text":  text,
		"organ": organ,
		"lang":  "pt",
	}
}

// Templates returns the shipped report text templates.
func Templates() []domain.Document {
	return []domain.Document{
		templateRow("vt_abd_01", "[VET] USG Abdominal Total (Normal)", "Abdomen",
			"FÍGADO: Dimensões preservadas, contornos regulares. Ecotextura homogênea e ecogenicidade preservada.\nVESÍCULA BILIAR: Repleta, conteúdo anecóico, paredes finas.\nBAÇO: Ecotextura homogênea e granular fina.\nRINS: Simétricos, relação córtico-medular mantida (1:1). Sem cálculos.\nBEXIGA: Repleta, paredes finas, sem sedimentos.\nTGI: Peristaltismo presente, estratificação parietal preservada.\nCONCLUSÃO: Estudo sonográfico abdominal sem alterações dignas de nota."),
		templateRow("vt_card_01", "[VET] Ecocardiograma (Triagem)", "Cardio",
			"ÁTRIO ESQUERDO: Relação AE/Ao preservada (< 1.5).\nVALVA MITRAL: Folhetos finos e móveis, sem fluxo regurgitante significativo ao Doppler.\nVENTRÍCULO ESQUERDO: Contratilidade preservada (Fração de Encurtamento > 25%). Paredes com espessura normal.\nCONCLUSÃO: Ausência de sinais ecocardiográficos de remodelamento cardíaco no momento."),
		templateRow("vt_gest_01", "[VET] Diagnóstico Gestacional", "Gestacional",
			"ÚTERO: Presença de vesículas gestacionais contendo embriões.\nVIABILIDADE: Batimentos cardíacos presentes e rítmicos (> 180 bpm).\nESTIMATIVA: Vesículas medindo aprox. [XX] cm, compatível com [XX] dias.\nCONCLUSÃO: Gestação tópica com fetos viáveis."),
		templateRow("ht_abd_01", "[MED] USG Abdome Total (Normal)", "Abdomen",
			"FÍGADO: Morfologia, dimensões e contornos normais. Ecotextura homogênea. Ausência de lesões focais.\nVIAS BILIARES: Sem dilatação intra ou extra-hepática.\nVESÍCULA BILIAR: Paredes finas, conteúdo anecóico (sem cálculos).\nPÂNCREAS: Visibilizado cabeça e corpo, com aspecto habitual.\nRINS: Tópicos, dimensões normais, espessura parenquimatosa preservada. Sem hidronefrose ou litíase.\nBEXIGA: Boa repleção, paredes lisas.\nCONCLUSÃO: Exame dentro dos limites da normalidade."),
		templateRow("ht_tv_01", "[MED] USG Transvaginal (Normal)", "Pelvico",
			"ÚTERO: Em anteversoflexão, centrado. Contornos regulares e ecotextura miometrial homogênea.\nENDOMÉTRIO: Centrado, linear, medindo [XX] mm de espessura.\nOVÁRIOS: Tópicos, com morfologia e dimensões preservadas, apresentando folículos simples.\nFUNDOS DE SACO: Livres de líquido.\nCONCLUSÃO: Ultrassonografia pélvica transvaginal sem alterações."),
		templateRow("ht_thy_01", "[MED] USG Tireoide (Normal)", "Pescoco",
			"TIREOIDE: Tópica, dimensões normais, contornos regulares.\nECOTEXTURA: Homogênea. Ausência de nódulos sólidos ou císticos.\nVASCULARIZAÇÃO: Ao Doppler, padrão de vascularização habitual.\nCONCLUSÃO: Tireoide de aspecto ecográfico normal (TI-RADS 1)."),
	}
}

// DefaultSettings returns the settings singleton created on first run.
func DefaultSettings() domain.Document {
	return domain.Document{
		"id":             domain.SettingsID,
		"practice_type":  string(domain.PracticeVet),
		"active_modules": []any{"core", "ultrasound", "financial", "prescription"},
		"clinic_name":    "Demo Clinic",
		"theme":          "light",
	}
}
